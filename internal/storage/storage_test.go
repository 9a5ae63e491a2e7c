package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yhdfc-next/internal/config"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/static/uploads/")
	url, err := store.Put(context.Background(), Object{Key: "2024/05/a.png", Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if url != "/static/uploads/2024/05/a.png" {
		t.Fatalf("unexpected url: %s", url)
	}
	content, err := os.ReadFile(filepath.Join(dir, "2024", "05", "a.png"))
	if err != nil || string(content) != "png" {
		t.Fatalf("file not written: %q %v", content, err)
	}
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "")
	url, err := store.Put(context.Background(), Object{Key: "../../etc/x.png", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if url != "/static/uploads/etc/x.png" {
		t.Fatalf("key should be confined to upload dir, got %s", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "etc", "x.png")); err != nil {
		t.Fatalf("file should be inside dir: %v", err)
	}
}

func TestNewObjectStore(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{Enabled: false})
	if err != nil || store != nil {
		t.Fatalf("disabled storage should return nil: %v", err)
	}
	if _, err := NewObjectStore(config.StorageConfig{Enabled: true, Endpoint: "s3.example.com"}); err != ErrNotConfigured {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
	store, err = NewObjectStore(config.StorageConfig{
		Enabled:   true,
		Endpoint:  "s3.ap-northeast-2.amazonaws.com",
		Bucket:    "yhdfc",
		AccessKey: "ak",
		SecretKey: "sk",
		UseSSL:    true,
	})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if store.baseURL != "https://s3.ap-northeast-2.amazonaws.com/yhdfc" || store.Name() != "s3" {
		t.Fatalf("unexpected store: %+v", store)
	}
}
