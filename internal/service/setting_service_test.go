package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yhdfc-next/internal/repository"
)

func TestSiteSettingDefaultsAndPatch(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db))
	ctx := context.Background()

	current, err := svc.GetSiteSetting(ctx)
	if err != nil {
		t.Fatalf("get site setting failed: %v", err)
	}
	if current.CompanyName != SiteDefaultSetting().CompanyName {
		t.Fatalf("want default company name, got %q", current.CompanyName)
	}

	name := "  YHDFC Seoul  "
	maintenance := true
	next, err := svc.PatchSiteSetting(ctx, SiteSettingPatch{CompanyName: &name, MaintenanceMode: &maintenance})
	if err != nil {
		t.Fatalf("patch site setting failed: %v", err)
	}
	if next.CompanyName != "YHDFC Seoul" || !next.MaintenanceMode {
		t.Fatalf("unexpected patched setting: %+v", next)
	}
	if next.CompanyEmail != SiteDefaultSetting().CompanyEmail {
		t.Fatalf("unpatched field should keep value, got %q", next.CompanyEmail)
	}

	reloaded, err := svc.GetSiteSetting(ctx)
	if err != nil {
		t.Fatalf("reload site setting failed: %v", err)
	}
	if reloaded.CompanyName != "YHDFC Seoul" {
		t.Fatalf("patch should be persisted, got %q", reloaded.CompanyName)
	}
}

func TestSiteSettingPatchRejectsInvalid(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db))

	empty := " "
	if _, err := svc.PatchSiteSetting(context.Background(), SiteSettingPatch{CompanyName: &empty}); !errors.Is(err, ErrSiteSettingInvalid) {
		t.Fatalf("want ErrSiteSettingInvalid, got %v", err)
	}
	email := "not-an-email"
	if _, err := svc.PatchSiteSetting(context.Background(), SiteSettingPatch{CompanyEmail: &email}); !errors.Is(err, ErrSiteSettingInvalid) {
		t.Fatalf("want ErrSiteSettingInvalid for email, got %v", err)
	}
}

func TestPublicSiteSettingHidesInternalSwitches(t *testing.T) {
	public := PublicSiteSetting(SiteDefaultSetting())
	if _, ok := public["allow_registration"]; ok {
		t.Fatalf("allow_registration should not be public")
	}
	if _, ok := public["require_email_verification"]; ok {
		t.Fatalf("require_email_verification should not be public")
	}
	if public["company_name"] != SiteDefaultSetting().CompanyName {
		t.Fatalf("company_name should be public")
	}
}
