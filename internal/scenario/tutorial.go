package scenario

import (
	"math"
	"math/rand"

	"orbitsim/internal/kernel"
)

// tutorial is the shared shape behind tutorial01..tutorial11: a single
// student ship (team 0) against a fixed or lightly-scripted target, using
// TutorialStatus (team 0 wins alone or fails outright, §4.6).
type tutorial struct {
	number int

	studentClass kernel.ShipClass
	targetClass  kernel.ShipClass // ClassTarget for a stationary dummy

	targetMoves   bool    // tutorial03+: target drifts/orbits
	targetCircle  bool    // tutorial02/03: draw the target's patrol circle overlay
	circleRadius  float64
	opponentIsRef bool // later tutorials: target itself is an armed reference agent
}

func (t *tutorial) Init(w *kernel.World, seed int64) {
	student := kernel.NewShip(t.studentClass, 0, kernel.Vec2{X: -2000, Y: 0}, 0, seed, 0)
	w.AddShip(student)

	target := kernel.NewShip(t.targetClass, 1, kernel.Vec2{X: 2000, Y: 0}, math.Pi, seed+1, 0)
	if t.targetMoves {
		target.ControllerTarget = kernel.Vec2{X: 2000, Y: 0}
		target.HasControllerTgt = true
	}
	w.AddShip(target)
}

func (t *tutorial) Tick(w *kernel.World) {
	if !t.targetMoves {
		return
	}
	rng := rand.New(rand.NewSource(int64(w.TickCount) + 1))
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		if s.Team != 1 || !s.HasControllerTgt {
			return
		}
		// Refresh the patrol waypoint every few seconds so the dummy target
		// keeps moving without an agent driving it (§4.6 "refresh controller
		// target vectors for tutorials").
		if w.TickCount%180 == 0 {
			angle := rng.Float64() * 2 * math.Pi
			s.ControllerTarget = kernel.Vec2{
				X: t.circleRadius * math.Cos(angle),
				Y: t.circleRadius * math.Sin(angle),
			}
		}
	})
}

func (t *tutorial) Status(w *kernel.World) kernel.Status { return TutorialStatus(w) }

func (t *tutorial) InitialCode(team int32) AgentSpec {
	if team == 0 {
		return AgentSpec{} // student supplies their own code
	}
	return t.Solution(team)
}

func (t *tutorial) Solution(team int32) AgentSpec {
	if team == 0 {
		return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(t.studentClass)}
	}
	if t.opponentIsRef {
		return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(t.targetClass)}
	}
	return AgentSpec{} // inert dummy target: no agent at all
}

func (t *tutorial) Lines(w *kernel.World) []kernel.Line {
	if !t.targetCircle {
		return nil
	}
	const segments = 32
	lines := make([]kernel.Line, 0, segments)
	for i := 0; i < segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		b := float64(i+1) / segments * 2 * math.Pi
		lines = append(lines, kernel.Line{
			A:     kernel.Vec2{X: t.circleRadius * math.Cos(a), Y: t.circleRadius * math.Sin(a)},
			B:     kernel.Vec2{X: t.circleRadius * math.Cos(b), Y: t.circleRadius * math.Sin(b)},
			Color: "yellow",
		})
	}
	return lines
}

func (t *tutorial) IsTournament() bool { return false }
func (t *tutorial) Description() string {
	return "tutorial exercise"
}

func init() {
	Register("tutorial01", func() Scenario {
		return &tutorial{number: 1, studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget}
	})
	Register("tutorial02", func() Scenario {
		return &tutorial{number: 2, studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget,
			targetCircle: true, circleRadius: 1000}
	})
	Register("tutorial03", func() Scenario {
		return &tutorial{number: 3, studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget,
			targetMoves: true, targetCircle: true, circleRadius: 2000}
	})
	Register("tutorial04", func() Scenario {
		return &tutorial{number: 4, studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget, targetMoves: true, circleRadius: 1500}
	})
	Register("tutorial05", func() Scenario {
		return &tutorial{number: 5, studentClass: kernel.ClassFighter, targetClass: kernel.ClassFighter}
	})
	Register("tutorial06", func() Scenario {
		return &tutorial{number: 6, studentClass: kernel.ClassFighter, targetClass: kernel.ClassFighter, opponentIsRef: true}
	})
	Register("tutorial07", func() Scenario {
		return &tutorial{number: 7, studentClass: kernel.ClassMissile, targetClass: kernel.ClassTarget}
	})
	Register("tutorial08", func() Scenario {
		return &tutorial{number: 8, studentClass: kernel.ClassFighter, targetClass: kernel.ClassFighter, opponentIsRef: true, targetMoves: true, circleRadius: 3000}
	})
	Register("tutorial09", func() Scenario {
		return &tutorial{number: 9, studentClass: kernel.ClassFrigate, targetClass: kernel.ClassFighter, opponentIsRef: true}
	})
	Register("tutorial10", func() Scenario {
		return &tutorial{number: 10, studentClass: kernel.ClassFrigate, targetClass: kernel.ClassCruiser, opponentIsRef: true}
	})
	Register("tutorial11", func() Scenario {
		return &tutorial{number: 11, studentClass: kernel.ClassCruiser, targetClass: kernel.ClassCruiser, opponentIsRef: true}
	})
}
