package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newFieldContext(t *testing.T, contentType, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", contentType)
	c.Request.RemoteAddr = "1.2.3.4:5678"
	return c
}

func TestKeyByIPAndFieldReadsJSON(t *testing.T) {
	c := newFieldContext(t, "application/json", `{"username":" Admin "}`)

	key := KeyByIPAndField("username")(c)
	if key != "admin|1.2.3.4" {
		t.Fatalf("key want admin|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), " Admin ") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndFieldReadsForm(t *testing.T) {
	c := newFieldContext(t, "application/x-www-form-urlencoded; charset=utf-8", "username=Editor&password=x")

	if key := KeyByIPAndField("username")(c); key != "editor|1.2.3.4" {
		t.Fatalf("key want editor|1.2.3.4 got %s", key)
	}
	if got := c.PostForm("password"); got != "x" {
		t.Fatalf("form should still bind after key extraction, got %q", got)
	}
}

func TestKeyByIPAndFieldFallsBackToIP(t *testing.T) {
	c := newFieldContext(t, "application/json", `{"other":"x"}`)
	if key := KeyByIPAndField("username")(c); key != "1.2.3.4" {
		t.Fatalf("key want 1.2.3.4 got %s", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("request %d should pass without redis, got %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestRetryAfter(t *testing.T) {
	cases := []struct {
		ttl    int64
		window int
		want   int
	}{
		{ttl: 30, window: 60, want: 30},
		{ttl: -1, window: 60, want: 60},
		{ttl: 0, window: 0, want: 1},
	}
	for _, tc := range cases {
		if got := retryAfter(tc.ttl, tc.window); got != tc.want {
			t.Fatalf("retryAfter(%d,%d) want %d got %d", tc.ttl, tc.window, tc.want, got)
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
