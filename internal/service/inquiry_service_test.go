package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/repository"
)

func newInquiryServiceForTest(t *testing.T, strict bool) (*InquiryService, repository.InquiryRepository) {
	t.Helper()
	db := setupServiceTestDB(t)
	repo := repository.NewInquiryRepository(db)
	cfg := &config.Config{Inquiry: config.InquiryConfig{StrictTransitions: strict}}
	svc := NewInquiryService(cfg, repo, repository.NewAdminRepository(db), nil, nil, nil)
	return svc, repo
}

func createInquiryForTest(t *testing.T, svc *InquiryService) *models.Inquiry {
	t.Helper()
	inquiry, err := svc.Create(context.Background(), CreateInquiryInput{
		Name:    " Kim ",
		Email:   "kim@example.com",
		Subject: "Locked phone",
		Message: "Please help",
	})
	if err != nil {
		t.Fatalf("create inquiry failed: %v", err)
	}
	return inquiry
}

func TestInquiryServiceCreateDefaults(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, false)
	inquiry := createInquiryForTest(t, svc)
	if inquiry.Name != "Kim" {
		t.Fatalf("name should be trimmed, got %q", inquiry.Name)
	}
	if inquiry.CountryCode != "+82" {
		t.Fatalf("country code default want +82, got %s", inquiry.CountryCode)
	}
	if inquiry.UrgencyLevel != constants.UrgencyNormal {
		t.Fatalf("urgency default want normal, got %s", inquiry.UrgencyLevel)
	}
	if inquiry.Status != constants.InquiryStatusNew || inquiry.IsRead {
		t.Fatalf("new inquiry should be new and unread: %+v", inquiry)
	}
}

func TestInquiryServiceCreateValidation(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, false)
	cases := []struct {
		name  string
		input CreateInquiryInput
		want  error
	}{
		{"missing message", CreateInquiryInput{Name: "a", Email: "a@b.com", Subject: "s", Message: "  "}, ErrInquiryRequiredFields},
		{"bad email", CreateInquiryInput{Name: "a", Email: "not-an-email", Subject: "s", Message: "m"}, ErrInvalidEmail},
		{"bad urgency", CreateInquiryInput{Name: "a", Email: "a@b.com", Subject: "s", Message: "m", UrgencyLevel: "panic"}, ErrInvalidUrgency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestInquiryServiceMarkAsReadOnlyFromNew(t *testing.T) {
	svc, repo := newInquiryServiceForTest(t, false)
	inquiry := createInquiryForTest(t, svc)

	got, err := svc.MarkAsRead(inquiry.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if got.Status != constants.InquiryStatusRead || !got.IsRead {
		t.Fatalf("new inquiry should become read: %+v", got)
	}

	if err := repo.UpdateFields(inquiry.ID, map[string]interface{}{"status": constants.InquiryStatusResponded}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, err = svc.MarkAsRead(inquiry.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if got.Status != constants.InquiryStatusResponded {
		t.Fatalf("responded inquiry should keep status, got %s", got.Status)
	}
}

func TestInquiryServiceGetMarksRead(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, false)
	inquiry := createInquiryForTest(t, svc)
	got, err := svc.Get(inquiry.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.InquiryStatusRead || !got.IsRead {
		t.Fatalf("get should mark new inquiry read: %+v", got)
	}
	if _, err := svc.Get(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing inquiry want ErrNotFound, got %v", err)
	}
}

func TestInquiryServiceUpdatePermissive(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, false)
	inquiry := createInquiryForTest(t, svc)

	closed := constants.InquiryStatusClosed
	got, err := svc.Update(inquiry.ID, UpdateInquiryInput{Status: &closed})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Status != closed || !got.IsRead {
		t.Fatalf("closed inquiry should be read: %+v", got)
	}

	// closed -> new 不在转换表中，宽松模式仅告警
	reopened := constants.InquiryStatusNew
	got, err = svc.Update(inquiry.ID, UpdateInquiryInput{Status: &reopened})
	if err != nil {
		t.Fatalf("permissive update failed: %v", err)
	}
	if got.Status != constants.InquiryStatusNew {
		t.Fatalf("status want new, got %s", got.Status)
	}

	bad := "archived"
	if _, err := svc.Update(inquiry.ID, UpdateInquiryInput{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("invalid status want ErrInvalidStatus, got %v", err)
	}
}

func TestInquiryServiceUpdateStrict(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, true)
	inquiry := createInquiryForTest(t, svc)

	closed := constants.InquiryStatusClosed
	if _, err := svc.Update(inquiry.ID, UpdateInquiryInput{Status: &closed}); err != nil {
		t.Fatalf("new -> closed should be allowed: %v", err)
	}
	responded := constants.InquiryStatusResponded
	if _, err := svc.Update(inquiry.ID, UpdateInquiryInput{Status: &responded}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("closed -> responded want ErrInvalidTransition, got %v", err)
	}

	urgent := constants.UrgencyUrgent
	got, err := svc.Update(inquiry.ID, UpdateInquiryInput{UrgencyLevel: &urgent})
	if err != nil {
		t.Fatalf("urgency update failed: %v", err)
	}
	if got.UrgencyLevel != urgent || got.Status != closed {
		t.Fatalf("unexpected inquiry after urgency update: %+v", got)
	}
}

func TestInquiryServiceDeleteAndStats(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, false)
	first := createInquiryForTest(t, svc)
	createInquiryForTest(t, svc)

	if _, err := svc.MarkAsRead(first.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Unread != 1 || stats.Today != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if err := svc.Delete(first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound, got %v", err)
	}
}

func TestInquiryServiceListRejectsUnknownStatus(t *testing.T) {
	svc, _ := newInquiryServiceForTest(t, false)
	createInquiryForTest(t, svc)
	if _, _, err := svc.List(repository.InquiryListFilter{Status: "bogus"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	rows, total, err := svc.List(repository.InquiryListFilter{Page: 1, PageSize: 10, Status: "all"})
	if err != nil || total != 1 || len(rows) != 1 {
		t.Fatalf("list all failed: total=%d len=%d err=%v", total, len(rows), err)
	}
}
