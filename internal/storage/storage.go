// Package storage 上传文件的持久化：S3 兼容对象存储与本地目录
package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured 对象存储未配置
var ErrNotConfigured = errors.New("object storage not configured")

// Object 待写入的对象
type Object struct {
	Key         string // 形如 2024/05/<uuid>.png，不含前缀
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store 存储后端
type Store interface {
	Name() string
	Put(ctx context.Context, obj Object) (string, error)
}

// LocalStore 本地目录存储
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore 创建本地存储
func NewLocalStore(dir, publicPrefix string) *LocalStore {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = filepath.Join("static", "uploads")
	}
	publicPrefix = strings.TrimRight(strings.TrimSpace(publicPrefix), "/")
	if publicPrefix == "" {
		publicPrefix = "/static/uploads"
	}
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}
}

// Name 存储类型
func (s *LocalStore) Name() string { return constants.StorageLocal }

// Put 写入本地文件，返回公开访问路径
func (s *LocalStore) Put(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := cleanKey(obj.Key)
	savePath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, obj.Body); err != nil {
		_ = dst.Close()
		_ = os.Remove(savePath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return s.publicPrefix + "/" + key, nil
}

// ObjectStore S3 兼容对象存储
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	baseURL   string
	keyPrefix string
}

// NewObjectStore 根据配置创建对象存储，未启用时返回 nil
func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	bucket := strings.TrimSpace(cfg.Bucket)
	if endpoint == "" || bucket == "" || strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + endpoint + "/" + bucket
	}
	return &ObjectStore{client: client, bucket: bucket, baseURL: baseURL, keyPrefix: "uploads"}, nil
}

// Name 存储类型
func (s *ObjectStore) Name() string { return constants.StorageObject }

// Put 上传对象，返回公开访问 URL
func (s *ObjectStore) Put(ctx context.Context, obj Object) (string, error) {
	key := path.Join(s.keyPrefix, cleanKey(obj.Key))
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, obj.Body, size, minio.PutObjectOptions{
		ContentType: obj.ContentType,
	})
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func cleanKey(key string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	return strings.TrimPrefix(cleaned, "/")
}
