package scenario

import (
	"math"
	"math/rand"

	"orbitsim/internal/kernel"
)

const (
	missileTestIterations  = 10
	missileTestMaxTicks    = 2000
	missileTestManeuverEveryTicks = 60 // once per simulated second at 60Hz
)

// missileTest drives up to 10 independent sub-iterations against a
// maneuvering dummy target (§4.6): each iteration reseeds from
// (seed%1000)*1000+iteration, succeeds when the target is destroyed
// within missileTestMaxTicks, and fails otherwise. The scenario directly
// commands the target's velocity each maneuver tick rather than binding
// it to an agent — there is no ABI primitive for "perform a random
// max-acceleration burst", only a scripted forcing function.
type missileTest struct {
	baseSeed int64

	iteration   int
	iterStart   uint64
	target      kernel.Handle
	missile     kernel.Handle
	maneuverRng *rand.Rand

	successes int
	failures  int
	finished  bool
}

func (m *missileTest) iterSeed() int64 {
	return (m.baseSeed%1000)*1000 + int64(m.iteration)
}

func (m *missileTest) Init(w *kernel.World, seed int64) {
	m.baseSeed = seed
	m.spawnIteration(w)
}

func (m *missileTest) spawnIteration(w *kernel.World) {
	s := m.iterSeed()
	m.maneuverRng = rand.New(rand.NewSource(s))
	m.iterStart = w.TickCount

	targetPos := kernel.Vec2{X: 4000, Y: 0}
	target := kernel.NewShip(kernel.ClassTarget, 1, targetPos, math.Pi, s, 0)
	m.target = w.AddShip(target)

	orders := kernel.EncodeOrders(int64(targetPos.X), int64(targetPos.Y))
	missile := kernel.NewShip(kernel.ClassMissile, 0, kernel.Vec2{}, 0, s+1, orders)
	m.missile = w.AddShip(missile)
}

func (m *missileTest) Tick(w *kernel.World) {
	if m.finished {
		return
	}

	elapsed := w.TickCount - m.iterStart

	if elapsed > 0 && elapsed%missileTestManeuverEveryTicks == 0 {
		if target, ok := w.Ships.GetPtr(m.target); ok {
			const maxAccel = 60.0 // ClassTarget has no envelope of its own; scripted burst magnitude
			angle := m.maneuverRng.Float64() * 2 * math.Pi
			target.Velocity = target.Velocity.Add(kernel.Vec2{X: maxAccel * math.Cos(angle), Y: maxAccel * math.Sin(angle)})
		}
	}

	_, targetAlive := w.Ships.GetPtr(m.target)
	if !targetAlive {
		m.successes++
		m.advance(w)
		return
	}
	if elapsed > missileTestMaxTicks {
		m.failures++
		m.advance(w)
		return
	}
}

func (m *missileTest) advance(w *kernel.World) {
	if missile, ok := w.Ships.GetPtr(m.missile); ok {
		missile.Health = 0 // force cleanup of a surviving missile between iterations
	}
	m.iteration++
	if m.iteration >= missileTestIterations {
		m.finished = true
		return
	}
	m.spawnIteration(w)
}

func (m *missileTest) Status(w *kernel.World) kernel.Status {
	if !m.finished {
		return kernel.Running()
	}
	if m.failures == 0 {
		return kernel.Victory(0)
	}
	return kernel.Failed()
}

func (m *missileTest) InitialCode(team int32) AgentSpec { return m.Solution(team) }
func (m *missileTest) Solution(team int32) AgentSpec {
	if team == 0 {
		return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassMissile)}
	}
	return AgentSpec{}
}
func (m *missileTest) Lines(w *kernel.World) []kernel.Line { return nil }
func (m *missileTest) IsTournament() bool                  { return false }
func (m *missileTest) Description() string {
	return "ten-iteration missile-intercept proving ground against a maneuvering target"
}

func init() {
	Register("missile_test", func() Scenario { return &missileTest{} })
}
