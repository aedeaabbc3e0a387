package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "astoria"

// Recorder は画像生成に関するメトリクスを記録します。
// nil の Recorder に対する呼び出しは何もしません。
type Recorder struct {
	generations *prometheus.CounterVec
	retries     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	storage     *prometheus.CounterVec
	http        *prometheus.HistogramVec
}

// NewRecorder はメトリクスを reg に登録して Recorder を返します。
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of generation requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_retries_total",
			Help:      "Total number of retries caused by transient failures",
		}, []string{"operation"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation requests including retries",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
		}, []string{"operation"}),
		storage: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_writes_total",
			Help:      "Total number of favorites persistence writes by outcome",
		}, []string{"outcome"}),
		http: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// ObserveGeneration は生成1回分の結果と所要時間を記録します。
func (r *Recorder) ObserveGeneration(operation, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (r *Recorder) IncRetry(operation string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(operation).Inc()
}

// IncStorageWrite はお気に入りの永続化結果を記録します。
func (r *Recorder) IncStorageWrite(outcome string) {
	if r == nil {
		return
	}
	r.storage.WithLabelValues(outcome).Inc()
}

// ObserveHTTP は HTTP リクエスト1件の所要時間を記録します。
func (r *Recorder) ObserveHTTP(method, path string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.http.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}
