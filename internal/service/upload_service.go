package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/storage"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// UploadResult 上传结果
type UploadResult struct {
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	Storage          string `json:"storage"`
}

// UploadService 文件上传服务：优先写入对象存储，失败时回退本地目录
type UploadService struct {
	cfg    config.UploadConfig
	object storage.Store
	local  storage.Store
	now    func() time.Time
}

// NewUploadService 创建文件上传服务实例，object 可为 nil
func NewUploadService(cfg config.UploadConfig, object storage.Store, local storage.Store) *UploadService {
	return &UploadService{cfg: cfg, object: object, local: local, now: time.Now}
}

// SaveFile 校验并保存上传的图片
func (s *UploadService) SaveFile(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
	}

	if strings.HasPrefix(contentType, "image/") {
		width, height, err := decodeImageDimensions(src, contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFileType, err)
		}
		if (s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth) || (s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight) {
			return nil, fmt.Errorf("%w: image %dx%d exceeds limit", ErrInvalidFileType, width, height)
		}
	}

	filename := uuid.New().String() + ext
	key := s.now().Format("2006/01") + "/" + filename

	stores := []storage.Store{s.object, s.local}
	var lastErr error
	for _, store := range stores {
		if store == nil {
			continue
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		url, err := store.Put(ctx, storage.Object{Key: key, ContentType: contentType, Size: file.Size, Body: src})
		if err != nil {
			logger.Warnw("upload_store_failed", "storage", store.Name(), "key", key, "error", err)
			lastErr = err
			continue
		}
		return &UploadResult{
			URL:              url,
			Filename:         filename,
			OriginalFilename: file.Filename,
			Storage:          store.Name(),
		}, nil
	}
	if lastErr == nil {
		lastErr = storage.ErrNotConfigured
	}
	return nil, lastErr
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("decode webp: %w", err)
		}
		return width, height, nil
	}

	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("invalid webp header")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, errors.New("invalid webp chunk")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		if chunkType == "VP8X" {
			if len(data) < 10 {
				return 0, 0, errors.New("vp8x chunk too short")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		}
		if chunkType == "VP8 " {
			if len(data) < 10 {
				return 0, 0, errors.New("vp8 chunk too short")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		}
		if chunkType == "VP8L" {
			if len(data) < 5 {
				return 0, 0, errors.New("vp8l chunk too short")
			}
			if data[0] != 0x2f {
				return 0, 0, errors.New("invalid vp8l signature")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			width := int(bits&0x3FFF) + 1
			height := int((bits>>14)&0x3FFF) + 1
			return width, height, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
