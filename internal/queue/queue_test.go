package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/yhdfc-next/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueInquiryNotify(context.Background(), InquiryNotifyPayload{InquiryID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueVisitGeolocate(context.Background(), VisitGeolocatePayload{VisitID: 1, IP: "8.8.8.8"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNewTasks(t *testing.T) {
	task, err := NewInquiryNotifyTask(InquiryNotifyPayload{InquiryID: 7, Locale: "ko-KR"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskInquiryNotify {
		t.Fatalf("unexpected type: %s", task.Type())
	}
	var payload InquiryNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil || payload.InquiryID != 7 {
		t.Fatalf("unexpected payload: %+v err=%v", payload, err)
	}

	task, err = NewVisitGeolocateTask(VisitGeolocatePayload{VisitID: 3, IP: "1.1.1.1"})
	if err != nil || task.Type() != TaskVisitGeolocate {
		t.Fatalf("unexpected geolocate task: %v %v", task, err)
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, Concurrency: 3})
	if opt.Addr != "redis:6380" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 3 || cfg.Queues[CriticalQueue] != 2 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
