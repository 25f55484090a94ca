package scenario

import (
	"math"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
	"orbitsim/internal/reference"
)

// duel is a symmetric two-ship tournament matchup: one ship per team of a
// fixed class, spawned on opposite sides of the arena facing each other.
// fighter_duel/frigate_duel/cruiser_duel/primitive_duel/frigate_vs_cruiser/
// cruiser_vs_frigate are all instances of this shape with different class
// pairs (§4.6's tournament evaluators).
type duel struct {
	classA, classB kernel.ShipClass
	spawnDistance  float64
	capitalShip    bool // selects CapitalShipTournamentStatus over TournamentStatus
}

func (d *duel) Init(w *kernel.World, seed int64) {
	half := d.spawnDistance / 2
	a := kernel.NewShip(d.classA, 0, kernel.Vec2{X: -half, Y: 0}, 0, seed, 0)
	b := kernel.NewShip(d.classB, 1, kernel.Vec2{X: half, Y: 0}, math.Pi, seed+1, 0)
	w.AddShip(a)
	w.AddShip(b)
}

func (d *duel) Tick(w *kernel.World) {}

func (d *duel) Status(w *kernel.World) kernel.Status {
	if d.capitalShip {
		return CapitalShipTournamentStatus(w)
	}
	return TournamentStatus(w)
}

func (d *duel) InitialCode(team int32) AgentSpec { return d.Solution(team) }

func (d *duel) Solution(team int32) AgentSpec {
	class := d.classA
	if team == 1 {
		class = d.classB
	}
	return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(class)}
}

func (d *duel) Lines(w *kernel.World) []kernel.Line { return nil }
func (d *duel) IsTournament() bool                  { return true }
func (d *duel) Description() string                 { return "one-on-one tournament duel" }

// referenceConstructor maps a ship class onto its reference.Agent
// constructor, used by every scenario that spawns reference-behavior
// opponents rather than guest code.
func referenceConstructor(class kernel.ShipClass) func(seed int64) agent.Agent {
	switch class {
	case kernel.ClassFighter:
		return func(seed int64) agent.Agent { return reference.NewFighter(seed) }
	case kernel.ClassFrigate:
		return func(seed int64) agent.Agent { return reference.NewFrigate(seed) }
	case kernel.ClassCruiser:
		return func(seed int64) agent.Agent { return reference.NewCruiser(seed) }
	case kernel.ClassMissile:
		return func(seed int64) agent.Agent { return reference.NewMissile(seed) }
	case kernel.ClassTorpedo:
		return func(seed int64) agent.Agent { return reference.NewTorpedo(seed) }
	default:
		return func(seed int64) agent.Agent { return reference.NewFighter(seed) }
	}
}

func init() {
	Register("fighter_duel", func() Scenario {
		return &duel{classA: kernel.ClassFighter, classB: kernel.ClassFighter, spawnDistance: 4000}
	})
	Register("frigate_duel", func() Scenario {
		return &duel{classA: kernel.ClassFrigate, classB: kernel.ClassFrigate, spawnDistance: 6000, capitalShip: true}
	})
	Register("cruiser_duel", func() Scenario {
		return &duel{classA: kernel.ClassCruiser, classB: kernel.ClassCruiser, spawnDistance: 8000, capitalShip: true}
	})
	Register("primitive_duel", func() Scenario {
		return &duel{classA: kernel.ClassFighter, classB: kernel.ClassFighter, spawnDistance: 2000}
	})
	Register("frigate_vs_cruiser", func() Scenario {
		return &duel{classA: kernel.ClassFrigate, classB: kernel.ClassCruiser, spawnDistance: 8000, capitalShip: true}
	})
	Register("cruiser_vs_frigate", func() Scenario {
		return &duel{classA: kernel.ClassCruiser, classB: kernel.ClassFrigate, spawnDistance: 8000, capitalShip: true}
	})
}
