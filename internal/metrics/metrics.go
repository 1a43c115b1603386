// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 認証系操作の結果ラベル
const (
	OutcomeSuccess      = "success"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// MetricsCollector はメトリクス収集のインターフェース。
// HTTPミドルウェアとハンドラー層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	RecordSignUp(outcome string)
	RecordSignIn(outcome string)
	RecordTimeTracked(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	signUps      *prometheus.CounterVec
	signIns      *prometheus.CounterVec
	timeTracked  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktimer_http_requests_total",
			Help: "メソッド・ルート・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tasktimer_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		signUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktimer_sign_ups_total",
			Help: "結果別のサインアップ数",
		}, []string{"outcome"}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktimer_sign_ins_total",
			Help: "結果別のサインイン数",
		}, []string{"outcome"}),
		timeTracked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tasktimer_time_log_duration_seconds",
			Help:    "停止された時間ログの計測時間（秒）",
			Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800},
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.signUps,
		c.signIns,
		c.timeTracked,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエスト数と処理時間を記録する。
// routeにはchiのルートパターン（例: /api/tasks/{id}）を渡し、ラベルの発散を防ぐ。
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSignUp はサインアップの結果を記録する。
func (c *Collector) RecordSignUp(outcome string) {
	c.signUps.WithLabelValues(outcome).Inc()
}

// RecordSignIn はサインインの結果を記録する。
func (c *Collector) RecordSignIn(outcome string) {
	c.signIns.WithLabelValues(outcome).Inc()
}

// RecordTimeTracked は停止された時間ログの長さを記録する。
func (c *Collector) RecordTimeTracked(duration time.Duration) {
	c.timeTracked.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopCollector は何も記録しないMetricsCollector。テストやメトリクス無効時に使う。
type NopCollector struct{}

func (NopCollector) RecordHTTPRequest(string, string, int, time.Duration) {}
func (NopCollector) RecordSignUp(string)                                  {}
func (NopCollector) RecordSignIn(string)                                  {}
func (NopCollector) RecordTimeTracked(time.Duration)                      {}

// compile-time interface check
var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = NopCollector{}
)
