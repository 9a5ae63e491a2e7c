// Package metrics 暴露 Prometheus 指标
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yhdfc"

// Metrics 指标集合，使用独立 Registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	inquiries     prometheus.Counter
	visits        prometheus.Counter
	taskProcessed *prometheus.CounterVec
	rateLimited   *prometheus.CounterVec
}

// New 创建指标集合并注册 Go 运行时指标
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inquiries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inquiries_created_total",
			Help:      "Inquiries submitted through the contact form.",
		}),
		visits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_tracked_total",
			Help:      "Page visits recorded by the tracking beacon.",
		}),
		taskProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_tasks_total",
			Help:      "Background tasks handled by the worker.",
		}, []string{"task", "result"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by rate limit rules.",
		}, []string{"rule"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.inquiries,
		m.visits,
		m.taskProcessed,
		m.rateLimited,
	)
	return m
}

// Default 进程级指标实例
var Default = New()

// Middleware 记录请求数与耗时，route 取 gin 路由模板避免高基数
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics 输出
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InquiryCreated 新咨询计数
func (m *Metrics) InquiryCreated() {
	if m == nil {
		return
	}
	m.inquiries.Inc()
}

// VisitTracked 访问记录计数
func (m *Metrics) VisitTracked() {
	if m == nil {
		return
	}
	m.visits.Inc()
}

// TaskHandled 后台任务计数，result 为 ok/error
func (m *Metrics) TaskHandled(task string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.taskProcessed.WithLabelValues(task, result).Inc()
}

// RateLimited 限流拒绝计数
func (m *Metrics) RateLimited(rule string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(rule).Inc()
}
