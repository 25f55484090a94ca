package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orbitsim/internal/matchrun"
)

// TestNewServerRouterUsableWithoutStart checks construction alone opens no
// listener: the returned server's router is usable directly with httptest
// without ever calling Start.
func TestNewServerRouterUsableWithoutStart(t *testing.T) {
	jobs := matchrun.NewManager(4, 1)
	srv := NewServer(jobs)
	defer srv.Stop()

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/scenarios")
	if err != nil {
		t.Fatalf("GET /api/scenarios: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

// TestServerWiresSnapshotHandlerToWebSocketHub checks NewServer installs
// a snapshot handler on the job manager that forwards to the server's own
// WebSocket hub, rather than leaving matches unobserved by subscribers.
func TestServerWiresSnapshotHandlerToWebSocketHub(t *testing.T) {
	jobs := matchrun.NewManager(4, 1)
	srv := NewServer(jobs)
	defer srv.Stop()

	if srv.wsHub == nil {
		t.Fatal("expected NewServer to construct a WebSocket hub")
	}
	// Broadcasting through the hub before Run() has started must not
	// block or panic; the channel send is non-blocking by design.
	srv.wsHub.Broadcast("job-1", "match:snapshot", struct{}{})
}

// TestServerRouterServesWebSocketRoute checks the /ws route is registered
// on the server's router (as opposed to only on the bare NewRouter
// output, which has no WebSocket route of its own).
func TestServerRouterServesWebSocketRoute(t *testing.T) {
	jobs := matchrun.NewManager(4, 1)
	srv := NewServer(jobs)
	defer srv.Stop()

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ws")
	if err != nil {
		t.Fatalf("GET /ws: %v", err)
	}
	defer resp.Body.Close()
	// A plain HTTP GET without the websocket upgrade headers should be
	// rejected by the upgrader, not 404 — proving the route exists.
	if resp.StatusCode == http.StatusNotFound {
		t.Error("expected /ws to be routed, got 404")
	}
}
