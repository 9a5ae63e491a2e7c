package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestEditorCanManagePostsButNotInquiries(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetAdminRoles(1, []string{"editor"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	cases := []struct {
		obj, act string
		want     bool
	}{
		{"/api/admin/posts/42", "put", true},
		{"/api/admin/posts", "POST", true},
		{"/api/admin/upload", "POST", true},
		{"/api/admin/inquiries", "GET", true},
		{"/api/admin/inquiries/7", "DELETE", false},
		{"/api/admin/settings", "PUT", false},
	}
	for _, tc := range cases {
		got, err := svc.EnforceAdmin(1, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if got != tc.want {
			t.Fatalf("enforce %s %s want %v, got %v", tc.act, tc.obj, tc.want, got)
		}
	}
}

func TestSetAdminRolesOverrideAndValidate(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetAdminRoles(2, []string{"editor", "support"}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"support"}); err != nil {
		t.Fatalf("override roles failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:support" {
		t.Fatalf("unexpected roles: %v", roles)
	}
	if err := svc.SetAdminRoles(2, []string{"ghost"}); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("unknown role want ErrRoleNotFound, got %v", err)
	}
}

func TestListRolesAndBootstrapIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Role)
	}
	if strings.Join(names, ",") != "role:editor,role:readonly_auditor,role:support" {
		t.Fatalf("unexpected roles: %v", names)
	}
	for _, r := range roles {
		if r.Role == "role:editor" && len(r.Policies) != 5 {
			t.Fatalf("editor policies want 5, got %d", len(r.Policies))
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := NormalizeObject("/api/admin/posts"); got != "/admin/posts" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got := NormalizeObject("api"); got != "/" {
		t.Fatalf("unexpected object: %s", got)
	}
	if _, err := NormalizeRole("  "); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("blank role want ErrRoleRequired, got %v", err)
	}
	if got, _ := NormalizeRole("content editor"); got != "role:content_editor" {
		t.Fatalf("unexpected role: %s", got)
	}
}
