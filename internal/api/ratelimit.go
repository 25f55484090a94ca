package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig bounds how fast one spectator IP may poll match status,
// start matches, or stream snapshots over HTTP.
type RateLimitConfig struct {
	RequestsPerSecond float64       // sustained requests/sec admitted per IP
	Burst             int           // tokens available for a short spike
	CleanupInterval   time.Duration // how often idle per-IP limiters are reaped
}

// DefaultRateLimitConfig is loose enough for a match dashboard polling
// snapshots every tick or two, but tight enough to blunt a spawner loop
// that hammers /api/match/start.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 10,
	Burst:             20,
	CleanupInterval:   5 * time.Minute,
}

// ipBucket pairs a token-bucket limiter with the last time its IP was
// seen, so an idle bucket can be reaped without a sweep of every request.
// lastSeenUnixNano is accessed atomically: cleanup() runs on a separate
// goroutine from the request path and a plain time.Time write here would
// race under the -race detector.
type ipBucket struct {
	limiter          *rate.Limiter
	lastSeenUnixNano atomic.Int64
}

func (b *ipBucket) touch(now time.Time) { b.lastSeenUnixNano.Store(now.UnixNano()) }
func (b *ipBucket) idleSince(cutoff time.Time) bool {
	return time.Unix(0, b.lastSeenUnixNano.Load()).Before(cutoff)
}

// IPRateLimiter hands out one token-bucket limiter per source IP, backed
// by a sync.Map so the hot path (one Allow call per incoming request)
// never blocks on a global mutex.
type IPRateLimiter struct {
	buckets  sync.Map // ip string -> *ipBucket
	config   RateLimitConfig
	stopChan chan struct{}
	stopOnce sync.Once

	allowed  atomic.Uint64
	rejected atomic.Uint64
}

// NewIPRateLimiter starts the limiter's background reaper and returns it
// ready to gate requests. A non-positive CleanupInterval falls back to
// DefaultRateLimitConfig's.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultRateLimitConfig.CleanupInterval
	}
	rl := &IPRateLimiter{
		config:   cfg,
		stopChan: make(chan struct{}),
	}
	go rl.reapIdleBuckets()
	return rl
}

// Stop ends the background reaper; safe to call more than once.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

func (rl *IPRateLimiter) bucketFor(ip string) *ipBucket {
	now := time.Now()

	if v, ok := rl.buckets.Load(ip); ok {
		b := v.(*ipBucket)
		b.touch(now)
		return b
	}

	fresh := &ipBucket{limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst)}
	fresh.touch(now)
	actual, _ := rl.buckets.LoadOrStore(ip, fresh)
	return actual.(*ipBucket)
}

func (rl *IPRateLimiter) reapIdleBuckets() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * rl.config.CleanupInterval)
			rl.buckets.Range(func(key, value any) bool {
				if value.(*ipBucket).idleSince(cutoff) {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}

// Allow reports whether a request from ip fits within its token bucket.
func (rl *IPRateLimiter) Allow(ip string) bool {
	if rl.bucketFor(ip).limiter.Allow() {
		rl.allowed.Add(1)
		return true
	}
	rl.rejected.Add(1)
	return false
}

// Middleware rejects with 429 once an IP exhausts its bucket, otherwise
// passes the request through untouched.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)
		if !rl.Allow(ip) {
			RecordConnectionRejected("rate_limit")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStats reports cumulative allow/reject counts across every IP.
func (rl *IPRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"allowed":  rl.allowed.Load(),
		"rejected": rl.rejected.Load(),
	}
}

// GetClientIP extracts the client IP from an HTTP request, honoring
// X-Forwarded-For / X-Real-IP for proxied deployments.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// WebSocketRateLimiter caps how many live match-snapshot subscriptions a
// single IP may hold open at once, independent of the HTTP request-rate
// limiter above (a subscriber opens one socket and then sends nothing
// further, so token-bucket accounting doesn't apply).
type WebSocketRateLimiter struct {
	openPerIP sync.Map // ip string -> *atomic.Int32
	maxPerIP  int

	rejected atomic.Uint64
}

// NewWebSocketRateLimiter caps concurrent subscriptions at maxPerIP.
func NewWebSocketRateLimiter(maxPerIP int) *WebSocketRateLimiter {
	return &WebSocketRateLimiter{maxPerIP: maxPerIP}
}

// Allow admits a new subscription from ip unless it's already at the cap.
func (wrl *WebSocketRateLimiter) Allow(ip string) bool {
	v, _ := wrl.openPerIP.LoadOrStore(ip, new(atomic.Int32))
	open := v.(*atomic.Int32)

	for {
		current := open.Load()
		if int(current) >= wrl.maxPerIP {
			wrl.rejected.Add(1)
			return false
		}
		if open.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

// Release frees one subscription slot for ip.
func (wrl *WebSocketRateLimiter) Release(ip string) {
	if v, ok := wrl.openPerIP.Load(ip); ok {
		v.(*atomic.Int32).Add(-1)
	}
}

// GetConnectionCount reports how many subscriptions ip currently holds.
func (wrl *WebSocketRateLimiter) GetConnectionCount(ip string) int {
	if v, ok := wrl.openPerIP.Load(ip); ok {
		return int(v.(*atomic.Int32).Load())
	}
	return 0
}

// GetStats reports cumulative subscription rejections.
func (wrl *WebSocketRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{"rejected": wrl.rejected.Load()}
}

// AllowedOrigins lists origins permitted to open a match-viewer WebSocket
// or call the HTTP API from a browser, beyond the always-allowed
// localhost-any-port case covering the local dev build of the renderer.
var AllowedOrigins = []string{
	"http://localhost",
	"http://localhost:3000",
	"http://localhost:8080",
}

// IsAllowedOrigin checks if an origin is permitted to open a connection.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	if strings.HasPrefix(origin, "http://localhost") {
		return true
	}
	for _, allowed := range AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
