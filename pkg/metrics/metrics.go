// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、图书创建总数、限流拒绝次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数、熔断器状态
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、目录操作耗时
//
// # 使用示例
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	books, total, err := svc.ListBooks(ctx, params)
//	metrics.ObserveCatalogOperation("list_books", start, err)
//
// # 命名规范
//
// 1. Counter以`_total`结尾
// 2. Histogram以单位结尾（`_seconds`）
// 3. 标签只使用有限取值（method、status、operation），不要使用book_id
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板，如/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// RateLimitedTotal 被限流拒绝的请求数
	RateLimitedTotal prometheus.Counter

	// 目录业务指标

	// CatalogOperationsTotal 目录操作总数
	// 标签：operation（list_books/create_book/...）、result（success/not_found/invalid/error）
	CatalogOperationsTotal *prometheus.CounterVec

	// CatalogOperationDuration 目录操作耗时
	CatalogOperationDuration *prometheus.HistogramVec

	// 消息队列指标

	// EventsPublishedTotal 图书事件发布总数
	// 标签：routing_key（book.created等）、result（success/failure）
	EventsPublishedTotal *prometheus.CounterVec

	// 目录客户端指标

	// CatalogClientRequestsTotal 目录客户端请求总数
	// 标签：method、result（success/failure/rejected）
	CatalogClientRequestsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=HALF_OPEN, 2=OPEN）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有Prometheus指标
// 使用promauto注册到默认Registry，多次调用只注册一次
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		RateLimitedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "http_rate_limited_total",
				Help: "被限流拒绝的请求数",
			},
		)

		CatalogOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_operations_total",
				Help: "目录操作总数",
			},
			[]string{"operation", "result"},
		)

		CatalogOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_operation_duration_seconds",
				Help:    "目录操作耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		)

		EventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_events_published_total",
				Help: "图书事件发布总数",
			},
			[]string{"routing_key", "result"},
		)

		CatalogClientRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_client_requests_total",
				Help: "目录客户端请求总数",
			},
			[]string{"method", "result"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=HALF_OPEN, 2=OPEN）",
			},
			[]string{"name"},
		)
	})
}

// ObserveCatalogOperation 记录一次目录操作的结果和耗时
// result由调用方按错误类别给出（success/not_found/invalid/error）
// 调用前需已执行InitMetrics
func ObserveCatalogOperation(operation string, start time.Time, result string) {
	CatalogOperationsTotal.WithLabelValues(operation, result).Inc()
	CatalogOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
