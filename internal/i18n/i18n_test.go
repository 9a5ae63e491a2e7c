package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLocalesParse(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("validate locales failed: %v", err)
	}
	for _, key := range []string{"error.slug_exists", "error.captcha_invalid", "email.inquiry.subject"} {
		if got := T(LocaleKO, key); got == key {
			t.Fatalf("ko-KR missing key %s", key)
		}
		if got := T(LocaleEN, key); got == key {
			t.Fatalf("en-US missing key %s", key)
		}
	}
}

func TestTFallback(t *testing.T) {
	if got := T("fr-FR", "error.slug_exists"); got != "slug already exists" {
		t.Fatalf("unexpected fallback: %s", got)
	}
	if got := T(LocaleKO, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should return itself, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected sprintf: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url    string
		header string
		want   string
	}{
		{"/", "", LocaleEN},
		{"/", "ko-KR,ko;q=0.9,en;q=0.8", LocaleKO},
		{"/?lang=ko", "en-US", LocaleKO},
		{"/", "*", LocaleEN},
		{"/", "ja-JP", LocaleEN},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("url=%s header=%s want %s got %s", tc.url, tc.header, tc.want, got)
		}
	}
}
