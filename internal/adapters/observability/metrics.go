package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "frontdesk", Name: "http_requests_total", Help: "View requests served."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frontdesk", Name: "http_request_duration_seconds",
			Help:    "View request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "frontdesk", Name: "api_requests_total", Help: "Requests to the hotel API."},
		[]string{"endpoint", "method", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frontdesk", Name: "api_request_duration_seconds",
			Help:    "Hotel API request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
	TokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "frontdesk", Name: "token_refreshes_total", Help: "Access token refresh attempts."},
		[]string{"result"}, // ok|failed
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "frontdesk", Name: "notifications_total", Help: "Toasts shown to the user."},
		[]string{"level"}, // success|error
	)
	StoreEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "frontdesk", Name: "store_events_total", Help: "Client storage and view store events."},
		[]string{"store", "event"},
	)
)

// Serve exposes h as /metrics on addr (or METRICS_ADDR) in the background.
// Empty disables it.
func Serve(addr string, h http.Handler) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, TokenRefreshes, Notifications, StoreEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one API call; status 0 means no response.
func ObserveExternal(endpoint, method string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(endpoint, method).Observe(dur.Seconds())
}

func ObserveRefresh(ok bool) {
	res := "ok"
	if !ok {
		res = "failed"
	}
	TokenRefreshes.WithLabelValues(res).Inc()
}

func ObserveNotification(level string) { Notifications.WithLabelValues(level).Inc() }

// ObserveStore counts a storage event (hit, miss, set, del) or a view store
// event (fetch, fetch_error, mutate, mutate_error, discarded).
func ObserveStore(store, event string) {
	StoreEvents.WithLabelValues(store, event).Inc()
}
