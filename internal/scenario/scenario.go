// Package scenario implements the pluggable scenario driver (§4.6): named
// match setups, each owning world construction, optional per-tick
// forcing, and status evaluation.
package scenario

import (
	"fmt"
	"sync"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

// AgentKind selects how a team's agent code is hosted.
type AgentKind int

const (
	// KindInProcess runs a trusted reference.Agent directly in the host
	// process (used by every built-in scenario's default opponent).
	KindInProcess AgentKind = iota
	// KindSubprocess runs an arbitrary guest binary out-of-process over the
	// agent wire protocol (used for submitted/untrusted agent code).
	KindSubprocess
)

// AgentSpec is a handle to one team's agent code, returned by
// Scenario.InitialCode/Solution (§4.6).
type AgentSpec struct {
	Kind       AgentKind
	NewAgent   func(seed int64) agent.Agent // populated when Kind == KindInProcess
	BinaryPath string                       // populated when Kind == KindSubprocess
}

// Scenario is the pluggable policy object with five operations plus two
// supplemented metadata accessors (§4.6, SPEC_FULL.md SUPPLEMENTED
// FEATURES).
type Scenario interface {
	// Init performs seed-deterministic world construction: walls, ship
	// spawns, initial controller state.
	Init(w *kernel.World, seed int64)

	// Tick applies optional per-tick forcing (moving targets, refreshed
	// controller vectors, topped-up populations).
	Tick(w *kernel.World)

	// Status evaluates the match's current outcome.
	Status(w *kernel.World) kernel.Status

	// InitialCode returns the agent code handle a team starts with.
	InitialCode(team int32) AgentSpec

	// Solution returns the reference agent code handle for a team, used
	// as the opponent/baseline in tutorials and tournaments.
	Solution(team int32) AgentSpec

	// Lines returns an optional debug overlay (e.g. a tutorial's target
	// circle).
	Lines(w *kernel.World) []kernel.Line

	// Description is a short human-readable summary, supplementing §4.6
	// with the metadata a scenario catalog listing needs.
	Description() string

	// IsTournament reports whether this scenario counts toward ranked
	// tournament play (only fighter/frigate/cruiser matchups do).
	IsTournament() bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Scenario)
)

// Register adds a named scenario constructor to the catalog. Called from
// each scenario file's package-level init().
func Register(name string, ctor func() Scenario) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// Get constructs the named scenario, or ErrUnknownScenario if name isn't
// in the catalog (§7).
func Get(name string) (Scenario, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", kernel.ErrUnknownScenario, name)
	}
	return ctor(), nil
}

// Names returns every registered scenario name, for catalog listings.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
