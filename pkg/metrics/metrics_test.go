package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic（重复注册）

	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil || HTTPRequestsInProgress == nil {
		t.Fatal("HTTP指标未初始化")
	}
	if CatalogOperationsTotal == nil || CatalogOperationDuration == nil {
		t.Fatal("目录指标未初始化")
	}
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/books/:id", "status": "404"}
	before := getCounterVecValue(t, HTTPRequestsTotal, labels)

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, map[string]string{"method": "GET", "path": "/books/:id", "status": "200"})
	IncCounterVec(HTTPRequestsTotal, labels)

	if got := getCounterVecValue(t, HTTPRequestsTotal, labels) - before; got != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", got)
	}
}

// TestGaugeVec 测试熔断器状态
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "catalog-a"}, 0)
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "catalog-b"}, 2)

	if v := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "catalog-a"}); v != 0 {
		t.Errorf("GaugeVec值错误: expected=0, got=%f", v)
	}
	if v := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "catalog-b"}); v != 2 {
		t.Errorf("GaugeVec值错误: expected=2, got=%f", v)
	}
}

// TestObserveCatalogOperation 测试目录操作指标
func TestObserveCatalogOperation(t *testing.T) {
	InitMetrics()

	counterLabels := map[string]string{"operation": "delete_book", "result": "not_found"}
	histLabels := map[string]string{"operation": "delete_book"}
	beforeCount := getCounterVecValue(t, CatalogOperationsTotal, counterLabels)
	beforeSamples := getHistogramVecCount(t, CatalogOperationDuration, histLabels)

	start := time.Now().Add(-20 * time.Millisecond)
	ObserveCatalogOperation("delete_book", start, "not_found")
	ObserveCatalogOperation("delete_book", start, "not_found")

	if got := getCounterVecValue(t, CatalogOperationsTotal, counterLabels) - beforeCount; got != 2 {
		t.Errorf("操作计数错误: expected=2, got=%f", got)
	}
	if got := getHistogramVecCount(t, CatalogOperationDuration, histLabels) - beforeSamples; got != 2 {
		t.Errorf("耗时观测次数错误: expected=2, got=%d", got)
	}
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "POST", "path": "/books"}
	before := getHistogramVecCount(t, HTTPRequestDuration, labels)

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/books"}, 0.2)

	if got := getHistogramVecCount(t, HTTPRequestDuration, labels) - before; got != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", got)
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := gaugeVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
