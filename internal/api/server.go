package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orbitsim/internal/kernel"
	"orbitsim/internal/matchrun"
)

// Server is the HTTP API server with WebSocket support, combining the
// chi router with a WebSocket hub for live match-snapshot streaming.
type Server struct {
	jobs        *matchrun.Manager
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server with default production
// configuration.
//
// No network listener is opened and the WebSocket hub's dispatch loop does
// not run until Start() is called, so the server can be constructed in
// tests. The rate limiter built here does start its idle-bucket reaper
// goroutine; Stop() ends it.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter()
// directly.
func NewServer(jobs *matchrun.Manager) *Server {
	s := &Server{
		jobs:  jobs,
		wsHub: NewWebSocketHub(),
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Jobs:        jobs,
		RateLimiter: s.rateLimiter,
	})
	s.router.Get("/ws", s.handleWS)

	// Every live snapshot produced by any running match gets pushed to
	// its subscribers as soon as it's captured.
	jobs.SetSnapshotHandler(func(jobID string, snap kernel.Snapshot) {
		s.wsHub.Broadcast(jobID, "match:snapshot", snap)
	})

	return s
}

// Start runs the WebSocket hub's dispatch loop and serves HTTP on addr.
// Call it only once; to stop the server, signal the process.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()

	log.Printf("API server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
//
// Example:
//
//	server := api.NewServer(jobs)
//	ts := httptest.NewServer(server.Router())
//	defer ts.Close()
//	resp, _ := http.Get(ts.URL + "/api/scenarios")
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop ends the rate limiter's reaper goroutine. It does not stop the
// WebSocket hub or an HTTP listener started by Start.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
