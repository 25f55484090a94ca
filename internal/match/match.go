// Package match ties the kernel, agent host, and scenario driver together
// into the outer loop described by §4.7: scenario forcing, then agent
// dispatch in ascending handle order, then the kernel's own physics/
// weapons/radar/collision phases, then status evaluation, each tick,
// until a non-Running status or MAX_TICKS.
package match

import (
	"fmt"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
	"orbitsim/internal/reference"
	"orbitsim/internal/scenario"
)

// Result is the outcome of one completed match.
type Result struct {
	Status kernel.Status
	Ticks  uint64
}

// Options configures optional hooks around a match run. The zero value
// runs silently to completion, matching Run's behavior.
type Options struct {
	// SnapshotCadence, when > 0, calls OnSnapshot every N ticks with the
	// world state snapshotted mid-run (§6's configurable cadence, applied
	// to a live run instead of only a finished one).
	SnapshotCadence int
	OnSnapshot      func(kernel.Snapshot)
}

// Run drives sc to completion against a freshly constructed world, binding
// each ship's agent the tick it's spawned (so missiles/torpedoes launched
// mid-match get their reference steering the very tick they're created).
func Run(sc scenario.Scenario, seed int64) (Result, *kernel.World, error) {
	return RunWithOptions(sc, seed, Options{})
}

// RunWithOptions is Run plus an optional live-snapshot callback, so a
// caller driving a match in the background (e.g. an HTTP job runner) can
// stream intermediate state without re-implementing the tick loop.
func RunWithOptions(sc scenario.Scenario, seed int64, opts Options) (Result, *kernel.World, error) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, seed)
	sc.Init(w, seed)

	host := agent.NewHost()
	binder := &binder{host: host, sc: sc, procs: make(map[string]*agent.Subprocess)}

	if err := binder.bindNewShips(w); err != nil {
		return Result{}, nil, err
	}

	const dt = 1.0 / kernel.DefaultTickRate

	emit := func(status kernel.Status) {
		if opts.OnSnapshot != nil && opts.SnapshotCadence > 0 && w.TickCount%uint64(opts.SnapshotCadence) == 0 {
			opts.OnSnapshot(w.Snapshot(status))
		}
	}

	for w.TickCount < kernel.DefaultMaxTicks {
		sc.Tick(w)
		intents := host.RunTick(w, w.Events)
		w.Tick(intents, dt)

		if err := binder.bindNewShips(w); err != nil {
			return Result{}, nil, err
		}

		status := sc.Status(w)
		w.Events.Emit(w.TickCount, kernel.EventMatchStatus, kernel.Handle{}, status.Kind.String())
		emit(status)
		if status.Kind != kernel.StatusRunning {
			return Result{Status: status, Ticks: w.TickCount}, w, nil
		}
	}

	final := kernel.Draw()
	emit(final)
	return Result{Status: final, Ticks: w.TickCount}, w, nil
}

// binder assigns each newly-seen ship an agent binding the first tick it
// becomes visible, so a missile launched this tick is flown from next
// tick onward without the driver needing to special-case spawns.
type binder struct {
	host   *agent.Host
	sc     scenario.Scenario
	bound  map[uint32]bool
	teams  map[int32]scenario.AgentSpec
	procs  map[string]*agent.Subprocess // one subprocess per distinct guest binary, shared across ships
}

func (b *binder) bindNewShips(w *kernel.World) error {
	if b.bound == nil {
		b.bound = make(map[uint32]bool)
	}
	if b.teams == nil {
		b.teams = make(map[int32]scenario.AgentSpec)
	}

	var firstErr error
	w.Ships.Each(func(h kernel.Handle, s *kernel.Ship) {
		if b.bound[h.Index] || firstErr != nil {
			return
		}
		b.bound[h.Index] = true
		if s.Data.Class == kernel.ClassTorpedo {
			s.Radar.TargetFilter = reference.TargetFilter
		}

		spec := b.specFor(s)
		if err := b.apply(h.Index, spec, s.Seed); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}

// specFor resolves which AgentSpec controls ship s: missiles and
// torpedoes always fly the universal reference steering regardless of
// which team launched them (§4.5); every other class uses its team's
// code handle, cached after the first lookup.
func (b *binder) specFor(s *kernel.Ship) scenario.AgentSpec {
	switch s.Data.Class {
	case kernel.ClassMissile:
		return scenario.AgentSpec{Kind: scenario.KindInProcess, NewAgent: func(seed int64) agent.Agent { return reference.NewMissile(seed) }}
	case kernel.ClassTorpedo:
		return scenario.AgentSpec{Kind: scenario.KindInProcess, NewAgent: func(seed int64) agent.Agent { return reference.NewTorpedo(seed) }}
	case kernel.ClassTarget, kernel.ClassAsteroid:
		return scenario.AgentSpec{} // inert by default, no behavior
	}

	if spec, ok := b.teams[s.Team]; ok {
		return spec
	}
	spec := b.sc.InitialCode(s.Team)
	if spec.Kind == scenario.KindInProcess && spec.NewAgent == nil && spec.BinaryPath == "" {
		spec = b.sc.Solution(s.Team)
	}
	b.teams[s.Team] = spec
	return spec
}

func (b *binder) apply(shipIndex uint32, spec scenario.AgentSpec, seed int64) error {
	switch spec.Kind {
	case scenario.KindInProcess:
		if spec.NewAgent == nil {
			return nil // inert: no agent bound, ship drifts under zero thrust
		}
		b.host.BindInProcess(shipIndex, spec.NewAgent(seed))
		return nil
	case scenario.KindSubprocess:
		proc, ok := b.procs[spec.BinaryPath]
		if !ok {
			socketPath := fmt.Sprintf("/tmp/orbitsim-agent-%x.sock", hashPath(spec.BinaryPath))
			launched, err := agent.Launch(spec.BinaryPath, socketPath)
			if err != nil {
				return fmt.Errorf("match: launch agent binary %q: %w", spec.BinaryPath, err)
			}
			b.procs[spec.BinaryPath] = launched
			proc = launched
		}
		b.host.BindSubprocess(shipIndex, proc)
		return nil
	default:
		return nil
	}
}

func hashPath(p string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(p); i++ {
		h ^= uint32(p[i])
		h *= 16777619
	}
	return h
}
