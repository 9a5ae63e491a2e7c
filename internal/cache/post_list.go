package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const postListVersionKey = "posts:list:version"

// PostListKey 公开文章列表缓存键，包含版本号以便整体失效
func PostListKey(ctx context.Context, page, limit int, categoryID uint, category, search string) (string, error) {
	version, err := GetInt64(ctx, postListVersionKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("posts:list:v%d:p%d:l%d:c%d:%s:%s",
		version, page, limit, categoryID,
		strings.ToLower(strings.TrimSpace(category)),
		strings.ToLower(strings.TrimSpace(search)),
	), nil
}

// InvalidatePostLists 使所有公开文章列表缓存失效
func InvalidatePostLists(ctx context.Context) error {
	_, err := Incr(ctx, postListVersionKey)
	return err
}

// TTLFromSeconds 秒数转换为缓存时长，非正数返回 0
func TTLFromSeconds(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
