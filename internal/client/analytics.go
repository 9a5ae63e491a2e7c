package client

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// AnalyticsSnapshot 访问统计面板数据
type AnalyticsSnapshot struct {
	Stats     AnalyticsStats
	Countries []CountryStat
	Recent    []RecentVisit
}

// Analytics 并行获取概览、国家分布与最近访问；任一失败则整体失败
func (c *Client) Analytics(ctx context.Context) (*AnalyticsSnapshot, error) {
	var (
		stats     AnalyticsStats
		countries []CountryStat
		recent    []RecentVisit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(gctx, "/api/admin/analytics/stats", nil, true, &stats)
	})
	g.Go(func() error {
		return c.get(gctx, "/api/admin/analytics/countries", limitQuery(20), true, &countries)
	})
	g.Go(func() error {
		return c.get(gctx, "/api/admin/analytics/recent", limitQuery(50), true, &recent)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &AnalyticsSnapshot{Stats: stats, Countries: countries, Recent: recent}, nil
}

func limitQuery(limit int) url.Values {
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}
