package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirehub_http_requests_total",
			Help: "Toplam HTTP istek sayısı",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hirehub_http_request_duration_seconds",
			Help:    "HTTP istek süresi (saniye)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ApplicationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hirehub_applications_created_total",
			Help: "Oluşturulan başvuru sayısı",
		},
	)

	ApplicationStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirehub_application_status_changes_total",
			Help: "Başvuru durum değişiklikleri",
		},
		[]string{"from", "to"},
	)

	ResumeUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirehub_resume_uploads_total",
			Help: "Özgeçmiş yükleme denemeleri",
		},
		[]string{"result"},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirehub_auth_attempts_total",
			Help: "Giriş ve kayıt denemeleri",
		},
		[]string{"kind", "result"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hirehub_cache_hits_total",
			Help: "Önbellek isabet sayısı",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hirehub_cache_misses_total",
			Help: "Önbellek isabet etmeme sayısı",
		},
	)
)

func RecordHttpRequest(method, route, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, route, status).Inc()
	HttpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordApplicationCreated() {
	ApplicationsCreated.Inc()
}

func RecordStatusChange(from, to string) {
	ApplicationStatusChanges.WithLabelValues(from, to).Inc()
}

func RecordResumeUpload(result string) {
	ResumeUploads.WithLabelValues(result).Inc()
}

func RecordAuthAttempt(kind, result string) {
	AuthAttempts.WithLabelValues(kind, result).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}
