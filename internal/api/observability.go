package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality (no per-ship or per-match labels).
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orbitsim_tick_duration_seconds",
		Help:    "Time spent advancing one kernel tick",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02},
	})

	matchesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orbitsim_matches_active",
		Help: "Currently running matches",
	})

	matchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orbitsim_matches_total",
		Help: "Total matches started",
	})

	shipCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orbitsim_ship_count",
		Help: "Ships alive across all running matches, summed",
	})

	eventLogTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orbitsim_event_log_total",
		Help: "Total events emitted to the per-match audit log",
	})

	eventLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orbitsim_event_log_dropped_total",
		Help: "Events dropped by per-fault-kind rate limiting",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbitsim_connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit"

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orbitsim_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbitsim_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orbitsim_websocket_connections_active",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orbitsim_websocket_messages_total",
		Help: "Total WebSocket messages sent",
	})
)

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	Enabled       bool
	ListenAddr    string // MUST be "127.0.0.1:6060" in production
	BasicAuthUser string // optional basic auth
	BasicAuthPass string
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// StartDebugServer starts the internal observability server.
// CRITICAL: this must bind to localhost only to prevent pprof-based DoS.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("debug server disabled")
		return nil
	}

	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("debug server forced to localhost for security")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	if cfg.BasicAuthUser != "" {
		handler = basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass, mux)
	}

	go func() {
		log.Printf("debug server starting on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
			log.Printf("debug server error: %v", err)
		}
	}()

	return nil
}

func basicAuthMiddleware(user, pass string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != user || p != pass {
			w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RecordTick records tick timing for metrics.
func RecordTick(d time.Duration) { tickDuration.Observe(d.Seconds()) }

// UpdateMatchesActive updates the currently-running-matches gauge.
func UpdateMatchesActive(n int) { matchesActive.Set(float64(n)) }

// RecordMatchStarted increments the total matches counter.
func RecordMatchStarted() { matchesTotal.Inc() }

// UpdateShipCount updates the summed live-ship gauge.
func UpdateShipCount(n int) { shipCount.Set(float64(n)) }

// UpdateEventLogStats records event log throughput/drop counts observed
// since the last call (deltas, not absolutes — counters only go up).
func UpdateEventLogStats(emitted, dropped uint64) {
	eventLogTotal.Add(float64(emitted))
	eventLogDropped.Add(float64(dropped))
}

// RecordConnectionRejected increments the rejection counter.
// reason must be one of: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit".
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request metrics.
func RecordRequest(method, endpoint string, status int, d time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
	requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}

// UpdateWSConnections updates the WebSocket connection gauge.
func UpdateWSConnections(count int) { wsConnectionsActive.Set(float64(count)) }

// IncrementWSMessages increments the WebSocket message counter.
func IncrementWSMessages() { wsMessagesTotal.Inc() }
