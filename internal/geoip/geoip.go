// Package geoip 通过 ip-api 兼容接口解析访问来源地理位置
package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultEndpoint = "http://ip-api.com/json/"
	defaultTimeout  = 5 * time.Second
	maxBodyBytes    = 64 << 10
)

var (
	ErrRequestFailed   = errors.New("geoip request failed")
	ErrResponseInvalid = errors.New("geoip response invalid")
)

// Location 地理位置
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
}

type lookupResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Location
}

// Client 地理位置查询客户端
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New 创建客户端，endpoint 为空时使用 ip-api.com
func New(endpoint string, timeout time.Duration) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{endpoint: endpoint, httpClient: &http.Client{Timeout: timeout}}
}

// Skippable 私有、回环、链路本地等地址不做解析
func Skippable(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return true
	}
	return parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsLinkLocalUnicast() ||
		parsed.IsLinkLocalMulticast() || parsed.IsUnspecified() || parsed.IsMulticast()
}

// Lookup 查询 IP 地理位置，不可解析的地址返回 nil
func (c *Client) Lookup(ctx context.Context, ip string) (*Location, error) {
	ip = strings.TrimSpace(ip)
	if Skippable(ip) {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+ip, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !strings.EqualFold(parsed.Status, "success") {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, parsed.Message)
	}
	location := parsed.Location
	return &location, nil
}
