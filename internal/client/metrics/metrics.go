// Package metrics содержит prometheus коллекторы движка синхронизации,
// кэша транзакций и исходящего HTTP трафика.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adakings"

// Metrics содержит все метрики клиента.
// nil *Metrics допустим: все методы ничего не делают.
type Metrics struct {
	// Очередь синхронизации
	OperationsQueued    *prometheus.CounterVec
	OperationsCompleted *prometheus.CounterVec
	OperationsFailed    *prometheus.CounterVec
	OperationsRetried   *prometheus.CounterVec
	OperationsCancelled prometheus.Counter
	QueueDepth          prometheus.Gauge
	ExecutionLatency    *prometheus.HistogramVec

	// Кэш транзакций
	CacheFetches *prometheus.CounterVec

	// HTTP клиент
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New создает и регистрирует все метрики клиента в reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OperationsQueued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "operations_queued_total",
			Help:      "Total number of operations added to the sync queue",
		}, []string{"type"}),
		OperationsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "operations_completed_total",
			Help:      "Total number of operations confirmed by the backend",
		}, []string{"type"}),
		OperationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "operations_failed_total",
			Help:      "Total number of operations that exhausted their retries",
		}, []string{"type"}),
		OperationsRetried: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "operation_retries_total",
			Help:      "Total number of scheduled retry attempts",
		}, []string{"type"}),
		OperationsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "operations_cancelled_total",
			Help:      "Total number of operations cancelled by the user",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "queue_depth",
			Help:      "Current number of operations waiting in the active queue",
		}),
		ExecutionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "operation_duration_seconds",
			Help:      "Time spent executing a queued operation against the backend",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"type", "outcome"}),

		CacheFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetches_total",
			Help:      "Transaction cache reads by the source that served them",
		}, []string{"source"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Outgoing HTTP requests by status code and method",
		}, []string{"code", "method"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Outgoing HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method"}),
	}
}

// OperationQueued увеличивает счетчик поставленных в очередь
func (m *Metrics) OperationQueued(opType string) {
	if m == nil {
		return
	}
	m.OperationsQueued.WithLabelValues(opType).Inc()
}

// OperationCompleted учитывает успешное выполнение
func (m *Metrics) OperationCompleted(opType string, took time.Duration) {
	if m == nil {
		return
	}
	m.OperationsCompleted.WithLabelValues(opType).Inc()
	m.ExecutionLatency.WithLabelValues(opType, "success").Observe(took.Seconds())
}

// OperationRetrying учитывает неудачную попытку, которая будет повторена
func (m *Metrics) OperationRetrying(opType string, took time.Duration) {
	if m == nil {
		return
	}
	m.OperationsRetried.WithLabelValues(opType).Inc()
	m.ExecutionLatency.WithLabelValues(opType, "error").Observe(took.Seconds())
}

// OperationFailed учитывает неудачную попытку без оставшихся повторов
func (m *Metrics) OperationFailed(opType string, took time.Duration) {
	if m == nil {
		return
	}
	m.OperationsFailed.WithLabelValues(opType).Inc()
	m.ExecutionLatency.WithLabelValues(opType, "error").Observe(took.Seconds())
}

// OperationCancelled увеличивает счетчик отмен
func (m *Metrics) OperationCancelled() {
	if m == nil {
		return
	}
	m.OperationsCancelled.Inc()
}

// SetQueueDepth обновляет gauge глубины очереди
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}

// CacheFetch считает чтение кэша из источника source
func (m *Metrics) CacheFetch(source string) {
	if m == nil {
		return
	}
	m.CacheFetches.WithLabelValues(source).Inc()
}

// InstrumentTransport оборачивает next, чтобы каждый запрос считался и замерялся.
// nil next означает http.DefaultTransport.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if m == nil {
		return next
	}
	return promhttp.InstrumentRoundTripperCounter(m.HTTPRequests,
		promhttp.InstrumentRoundTripperDuration(m.HTTPLatency, next))
}
