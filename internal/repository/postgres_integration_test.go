//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yhdfc-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{&models.Post{}, &models.Category{}, &models.Inquiry{}, &models.Visit{}}
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := db.AutoMigrate(&models.Category{}, &models.Post{}, &models.Inquiry{}, &models.Visit{}); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresCaseInsensitiveSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Name: "Press", Slug: "press"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	postRepo := NewPostRepository(db)
	if err := postRepo.Create(&models.Post{
		Title:       "Mobile Forensics Release",
		Slug:        "pg-post-release",
		Content:     "<p>body</p>",
		CategoryID:  category.ID,
		IsPublished: true,
	}); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	rows, total, err := postRepo.List(PostListFilter{Page: 1, PageSize: 10, Search: "forensics"})
	if err != nil {
		t.Fatalf("post list search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("post list search want 1 got total=%d len=%d", total, len(rows))
	}

	inquiryRepo := NewInquiryRepository(db)
	if err := inquiryRepo.Create(&models.Inquiry{Name: "Kim", Email: "kim@example.com", Subject: "Phone", Message: "Locked iPhone"}); err != nil {
		t.Fatalf("create inquiry failed: %v", err)
	}
	items, count, err := inquiryRepo.List(InquiryListFilter{Page: 1, PageSize: 10, Search: "IPHONE"})
	if err != nil {
		t.Fatalf("inquiry search failed: %v", err)
	}
	if count != 1 || len(items) != 1 {
		t.Fatalf("inquiry search want 1 got total=%d len=%d", count, len(items))
	}

	visitRepo := NewVisitRepository(db)
	if err := visitRepo.Create(&models.Visit{PagePath: "/", IPMasked: "1.2.xxx.xxx"}); err != nil {
		t.Fatalf("create visit failed: %v", err)
	}
	daily, err := visitRepo.Daily(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("daily visits failed: %v", err)
	}
	if len(daily) != 1 || daily[0].Visits != 1 {
		t.Fatalf("daily visits unexpected: %+v", daily)
	}
}
