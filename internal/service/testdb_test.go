package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yhdfc-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Category{}, &models.Post{}, &models.Inquiry{}, &models.Visit{}, &models.Setting{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}
