// Package metrics 提供基于 Prometheus 的数据结构操作指标采集.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// OutcomeOK 操作成功。
	OutcomeOK = "ok"
	// OutcomeError 操作被拒绝（例如元素越界）。
	OutcomeError = "error"
)

// Metrics 封装了基于 Prometheus 的指标采集注册表及预定义的标准监控指标。
type Metrics struct {
	registry *prometheus.Registry // 内部独立的 Prometheus 注册中心

	OpsTotal   *prometheus.CounterVec   // 操作总量 (维度: structure, op, outcome)
	OpDuration *prometheus.HistogramVec // 操作耗时分布 (维度: structure, op)
	Blocks     *prometheus.GaugeVec     // 当前块数量或剩余元素数量 (维度: structure)
	BuildInfo  *prometheus.GaugeVec     // 构建信息
}

// NewMetrics 初始化并返回一个新的指标采集器。
// 它会自动注册 Go 运行时指标和进程指标。
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.OpsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "unionfind_operations_total",
		Help: "Total number of data structure operations",
	}, []string{"structure", "op", "outcome"})

	// 单次操作在纳秒到微秒量级，默认桶过粗。
	m.OpDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "unionfind_operation_duration_seconds",
		Help:    "Data structure operation latency in seconds",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
	}, []string{"structure", "op"})

	m.Blocks = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "unionfind_blocks",
		Help: "Number of disjoint blocks, or remaining elements for successor structures",
	}, []string{"structure"})

	slog.Info("unified metrics registry initialized", "service", serviceName)
	return m
}

// NewCounterVec 创建并注册一个新的计数器指标。
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec 创建并注册一个新的仪表盘指标。
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec 创建并注册一个新的直方图指标。
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// ObserveOp 记录一次操作的结果与耗时。
func (m *Metrics) ObserveOp(structure, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.OpsTotal.WithLabelValues(structure, op, outcome).Inc()
	m.OpDuration.WithLabelValues(structure, op).Observe(time.Since(start).Seconds())
}

// SetBlocks 更新指定结构的块数量。
func (m *Metrics) SetBlocks(structure string, n int) {
	if m == nil {
		return
	}
	m.Blocks.WithLabelValues(structure).Set(float64(n))
}

// Registry 返回内部注册中心，供测试与自定义采集器使用。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回用于暴露指标的 HTTP 处理器。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ExposeHttp 在指定端口启动一个独立的 HTTP 服务器用于暴露指标数据。
// 返回一个清理函数用于优雅关闭该服务器。
func (m *Metrics) ExposeHttp(port string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown metrics server", "error", err)
		}
	}
}
