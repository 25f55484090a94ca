package kernel

import (
	"orbitsim/internal/spatial"
)

// DefaultWorldSize is WORLD_SIZE (§3): the side length of the bounded
// square arena. Scenarios may override it at construction.
const DefaultWorldSize = 20000.0

// DefaultMaxTicks is MAX_TICKS (§3): the hard per-match tick cap.
const DefaultMaxTicks = 10000

// DefaultTickRate is 1/Δt: ticks per simulated second (§3: Δt = 1/60s).
const DefaultTickRate = 60

// DamageCoefficient (k in §4.1 step 5) is frozen per SPEC_FULL.md's
// SUPPLEMENTED FEATURES note: §9 leaves k and the bullet mass/velocity
// trade-off unspecified, so a single fixed table entry is chosen and
// documented here rather than guessed per call site.
const DamageCoefficient = 0.0005

// Line is a scenario overlay, output-only (e.g. the tutorial target
// circle).
type Line struct {
	A, B  Vec2
	Color string
}

// World owns every entity in one simulation instance: ships, bullets,
// overlay lines, the deterministic RNG stream, and the broad-phase
// spatial index used by radar and collision resolution. One World backs
// exactly one match; multiple Worlds may run concurrently across OS
// threads for tournament execution, never sharing mutable state (§5).
type World struct {
	Size      float64
	TickCount uint64

	Ships   *Arena[Ship]
	Bullets *Arena[Bullet]
	Lines   []Line

	RNG    *DeterministicRNG
	Events *EventLog

	grid *spatial.Grid

	Poisoned bool // set by the panic-recovery hook on an internal invariant violation (§7)
}

// NewWorld creates an empty world seeded for deterministic replay.
func NewWorld(size float64, seed int64) *World {
	return &World{
		Size:    size,
		Ships:   NewArena[Ship](),
		Bullets: NewArena[Bullet](),
		RNG:     NewDeterministicRNG(seed),
		Events:  NewEventLog(),
		grid:    spatial.NewGrid(size, size, 2000, 512),
	}
}

// Tick advances the world by one Δt, running the kernel-owned portion of
// the §2 control flow: physics.integrate → weapons.update → radar.sweep →
// collision.resolve → garbage collection. Scenario forcing and per-ship
// agent dispatch happen around this call, in the match driver. intents
// maps each live ship's arena index to the Intent its agent accumulated
// this tick (a missing entry is treated as an empty intent: drift under
// zero thrust, as an unresponsive/faulted agent would produce).
func (w *World) Tick(intents map[uint32]*Intent, dt float64) {
	w.RNG.Advance()
	w.integratePhysics(intents, dt)
	w.weaponsUpdate(intents, dt)
	w.sweepRadar()
	w.resolveCollisions()
	w.collectGarbage()
	w.Events.Emit(w.TickCount, EventTick, Handle{}, "")
	w.TickCount++
}

// AddShip inserts ship into the arena and returns its handle.
func (w *World) AddShip(s *Ship) Handle {
	h := w.Ships.Insert(*s)
	w.Events.Emit(w.TickCount, EventShipSpawned, h, s.Data.Class.String())
	return h
}

// AddBullet inserts b into the arena and returns its handle.
func (w *World) AddBullet(b Bullet) Handle {
	h := w.Bullets.Insert(b)
	w.Events.Emit(w.TickCount, EventBulletFired, h, "")
	return h
}

// rebuildGrid re-indexes all live ships and bullets into the broad-phase
// grid at their current positions. weaponsUpdate calls it before its
// explosions and sweepRadar calls it before the sweep; resolveCollisions
// uses the index built by sweepRadar.
func (w *World) rebuildGrid() {
	w.grid.Clear()
	w.Ships.Each(func(h Handle, s *Ship) {
		w.grid.Insert(h.Index, s.Position.X+w.Size/2, s.Position.Y+w.Size/2)
	})
	w.Bullets.Each(func(h Handle, b *Bullet) {
		w.grid.Insert(h.Index, b.Position.X+w.Size/2, b.Position.Y+w.Size/2)
	})
}

// shipsNear returns the live ships, excluding self, indexed in the grid
// cells that overlap radius around center as of the last rebuildGrid. It
// is a broad-phase superset: it can include ships farther than radius.
// Offsets world coordinates (which may be negative, centered on the
// origin) into the grid's positive coordinate space.
func (w *World) shipsNear(center Vec2, radius float64, self Handle) []Handle {
	candidates := w.grid.QueryRadius(center.X+w.Size/2, center.Y+w.Size/2, radius)
	live := make(map[uint32]Handle, w.Ships.Len())
	for _, h := range w.Ships.Handles() {
		live[h.Index] = h
	}

	out := make([]Handle, 0, len(candidates))
	seen := make(map[uint32]bool, len(candidates))
	for _, idx := range candidates {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		h, ok := live[idx]
		if !ok || h == self {
			continue
		}
		out = append(out, h)
	}
	return out
}
