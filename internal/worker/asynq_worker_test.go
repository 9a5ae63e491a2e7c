package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yhdfc-next/internal/geoip"
	"github.com/yhdfc-next/internal/metrics"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/provider"
	"github.com/yhdfc-next/internal/queue"
	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Visit{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewConsumer(&provider.Container{Metrics: metrics.New()}), db
}

func scrapeMetrics(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatalf("read metrics failed: %v", err)
	}
	return string(body)
}

func TestInquiryNotifyMalformedPayloadSkipsRetry(t *testing.T) {
	consumer, _ := newTestConsumer(t)
	err := consumer.handleInquiryNotify(context.Background(), asynq.NewTask(queue.TaskInquiryNotify, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}
}

func TestInquiryNotifySkipsInvalidPayloadAndMissingService(t *testing.T) {
	consumer, _ := newTestConsumer(t)
	zero, _ := queue.NewInquiryNotifyTask(queue.InquiryNotifyPayload{})
	if err := consumer.handleInquiryNotify(context.Background(), zero); err != nil {
		t.Fatalf("zero inquiry id should be ignored, got %v", err)
	}
	task, _ := queue.NewInquiryNotifyTask(queue.InquiryNotifyPayload{InquiryID: 5, Locale: "ko-KR"})
	if err := consumer.handleInquiryNotify(context.Background(), task); err != nil {
		t.Fatalf("nil inquiry service should be ignored, got %v", err)
	}
}

func TestVisitGeolocateUpdatesVisit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","country":"South Korea","countryCode":"KR","city":"Seoul"}`))
	}))
	defer server.Close()

	consumer, db := newTestConsumer(t)
	repo := repository.NewVisitRepository(db)
	visit := &models.Visit{PagePath: "/", IPMasked: "8.8.xxx.xxx"}
	if err := repo.Create(visit); err != nil {
		t.Fatalf("create visit failed: %v", err)
	}
	consumer.TrackingService = service.NewTrackingService(repo, geoip.New(server.URL, time.Second), nil, true)

	task, err := queue.NewVisitGeolocateTask(queue.VisitGeolocatePayload{VisitID: visit.ID, IP: "8.8.8.8"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	handler := consumer.observe(queue.TaskVisitGeolocate, consumer.handleVisitGeolocate)
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("geolocate failed: %v", err)
	}

	var got models.Visit
	if err := db.First(&got, visit.ID).Error; err != nil {
		t.Fatalf("load visit failed: %v", err)
	}
	if got.CountryCode != "KR" || got.City != "Seoul" {
		t.Fatalf("unexpected visit geo: %+v", got)
	}
	if out := scrapeMetrics(t, consumer.Metrics); !strings.Contains(out, `yhdfc_worker_tasks_total{result="ok",task="visit:geolocate"} 1`) {
		t.Fatalf("task metric missing:\n%s", out)
	}
}

func TestVisitGeolocateFailureIsRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	consumer, db := newTestConsumer(t)
	consumer.TrackingService = service.NewTrackingService(repository.NewVisitRepository(db), geoip.New(server.URL, time.Second), nil, true)

	task, _ := queue.NewVisitGeolocateTask(queue.VisitGeolocatePayload{VisitID: 1, IP: "8.8.8.8"})
	handler := consumer.observe(queue.TaskVisitGeolocate, consumer.handleVisitGeolocate)
	err := handler(context.Background(), task)
	if !errors.Is(err, geoip.ErrRequestFailed) {
		t.Fatalf("want geoip request error, got %v", err)
	}
	if out := scrapeMetrics(t, consumer.Metrics); !strings.Contains(out, `yhdfc_worker_tasks_total{result="error",task="visit:geolocate"} 1`) {
		t.Fatalf("task error metric missing:\n%s", out)
	}
}
