package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yhdfc-next/internal/client"
	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/provider"
	"github.com/yhdfc-next/internal/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newSiteServer 基于内存 sqlite 启动完整路由
func newSiteServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	if err := models.InitDB("sqlite", dsn, models.DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: "silent"}); err != nil {
		t.Fatalf("init db failed: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.EnsureDefaultCategories(); err != nil {
		t.Fatalf("seed categories failed: %v", err)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "debug"},
		JWT:      config.JWTConfig{SecretKey: "handler-test-secret-0123456789abcdef", ExpireHours: 1},
		Upload:   config.UploadConfig{Dir: t.TempDir(), PublicPrefix: "/static/uploads"},
		Tracking: config.TrackingConfig{Enabled: true, GeoIPEndpoint: "http://127.0.0.1:1/"},
		Captcha:  config.CaptchaConfig{Provider: constants.CaptchaProviderNone},
	}
	server := httptest.NewServer(router.SetupRouter(cfg, provider.NewContainer(cfg)))
	t.Cleanup(server.Close)
	return server, client.New(server.URL, client.NewSession(client.NewMemoryStorage()), client.WithLogger(zap.NewNop()))
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.Response {
	t.Helper()
	defer resp.Body.Close()
	var body response.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope failed: %v", err)
	}
	return body
}

func TestCreateInquiryFillsDefaults(t *testing.T) {
	_, c := newSiteServer(t)

	inquiry, err := c.SubmitInquiry(context.Background(), map[string]string{
		"name":    "Kim Minsu",
		"email":   "minsu@example.com",
		"subject": "Phone recovery",
		"message": "Locked device after update",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if inquiry.CountryCode != "+82" || inquiry.UrgencyLevel != "normal" || inquiry.Status != "new" || inquiry.IsRead {
		t.Fatalf("defaults not applied: %+v", inquiry)
	}

	var stored models.Inquiry
	if err := models.DB.First(&stored, inquiry.ID).Error; err != nil {
		t.Fatalf("load stored inquiry failed: %v", err)
	}
	if stored.CountryCode != "+82" || stored.UrgencyLevel != "normal" {
		t.Fatalf("stored defaults mismatch: %+v", stored)
	}
}

func TestCreateInquiryRejectsBadInput(t *testing.T) {
	_, c := newSiteServer(t)
	cases := map[string]map[string]string{
		"missing message": {"name": "Kim", "email": "kim@example.com", "subject": "s"},
		"bad email":       {"name": "Kim", "email": "not-an-email", "subject": "s", "message": "m"},
		"bad urgency":     {"name": "Kim", "email": "kim@example.com", "subject": "s", "message": "m", "urgency_level": "asap"},
	}
	for name, payload := range cases {
		_, err := c.SubmitInquiry(context.Background(), payload)
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.BusinessCode != response.CodeBadRequest || apiErr.StatusCode != http.StatusOK {
			t.Fatalf("%s: want business 400 over HTTP 200, got %v", name, err)
		}
	}
	var count int64
	models.DB.Model(&models.Inquiry{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected inquiries must not be stored, got %d", count)
	}
}

func TestTrackStoresMaskedForwardedIP(t *testing.T) {
	server, _ := newSiteServer(t)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/track", bytes.NewBufferString(`{"page_path":"/press"}`))
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "10.20.30.40, 172.16.0.1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("track request failed: %v", err)
	}
	if body := decodeEnvelope(t, resp); resp.StatusCode != http.StatusOK || body.StatusCode != response.CodeOK {
		t.Fatalf("track should succeed, got http=%d body=%+v", resp.StatusCode, body)
	}

	var visits []models.Visit
	if err := models.DB.Find(&visits).Error; err != nil {
		t.Fatalf("load visits failed: %v", err)
	}
	if len(visits) != 1 || visits[0].PagePath != "/press" || visits[0].IPMasked != "10.20.xxx.xxx" {
		t.Fatalf("unexpected visits: %+v", visits)
	}
}

func TestMissingPostAndRouteEnvelopes(t *testing.T) {
	server, _ := newSiteServer(t)

	resp, err := http.Get(server.URL + "/api/posts/no-such-slug")
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	body := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK || body.StatusCode != response.CodeNotFound {
		t.Fatalf("missing slug want HTTP 200 with code 404, got http=%d body=%+v", resp.StatusCode, body)
	}

	resp, err = http.Get(server.URL + "/api/no-such-route")
	if err != nil {
		t.Fatalf("get route failed: %v", err)
	}
	body = decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusNotFound || body.StatusCode != response.CodeNotFound {
		t.Fatalf("route miss want HTTP 404 with code 404, got http=%d body=%+v", resp.StatusCode, body)
	}
}
