package scenario

import (
	"math"
	"math/rand"

	"orbitsim/internal/kernel"
)

// welcome is the zero-stakes sandbox scenario: a lone fighter among a
// small asteroid field that is topped back up whenever it thins out
// (§4.6's "top up asteroid populations (Welcome)").
type welcome struct{}

const welcomeAsteroidTarget = 12

func (welcome) Init(w *kernel.World, seed int64) {
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, seed, 0))
	spawnAsteroids(w, seed, welcomeAsteroidTarget)
}

func (welcome) Tick(w *kernel.World) {
	count := 0
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		if s.Data.Class == kernel.ClassAsteroid {
			count++
		}
	})
	if count < welcomeAsteroidTarget && w.TickCount%60 == 0 {
		spawnAsteroids(w, int64(w.TickCount)+1, welcomeAsteroidTarget-count)
	}
}

func (welcome) Status(w *kernel.World) kernel.Status        { return kernel.Running() }
func (welcome) InitialCode(team int32) AgentSpec             { return AgentSpec{} }
func (welcome) Solution(team int32) AgentSpec                { return AgentSpec{} }
func (welcome) Lines(w *kernel.World) []kernel.Line          { return nil }
func (welcome) IsTournament() bool                           { return false }
func (welcome) Description() string                          { return "open sandbox with a self-replenishing asteroid field" }

func spawnAsteroids(w *kernel.World, seed int64, n int) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		radius := 1000 + rng.Float64()*8000
		pos := kernel.Vec2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		w.AddShip(kernel.NewShip(kernel.ClassAsteroid, -1, pos, rng.Float64()*2*math.Pi, seed+int64(i), 0))
	}
}

// gunnery is a stationary-target range: team 0's fighter against a row of
// immobile dummy targets.
type gunnery struct{}

func (gunnery) Init(w *kernel.World, seed int64) {
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{X: -3000, Y: 0}, 0, seed, 0))
	for i := 0; i < 5; i++ {
		y := float64(i-2) * 800
		w.AddShip(kernel.NewShip(kernel.ClassTarget, 1, kernel.Vec2{X: 3000, Y: y}, math.Pi, seed+int64(i)+1, 0))
	}
}

func (gunnery) Tick(w *kernel.World)                       {}
func (gunnery) Status(w *kernel.World) kernel.Status       { return TutorialStatus(w) }
func (gunnery) InitialCode(team int32) AgentSpec           { return AgentSpec{} }
func (gunnery) Solution(team int32) AgentSpec {
	if team == 0 {
		return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassFighter)}
	}
	return AgentSpec{}
}
func (gunnery) Lines(w *kernel.World) []kernel.Line { return nil }
func (gunnery) IsTournament() bool                  { return false }
func (gunnery) Description() string                 { return "stationary-target gunnery range" }

// furball is a free-for-all: several fighters per team, no walls beyond
// the arena bound, tournament-scored.
type furball struct{ perTeam int }

func (f furball) Init(w *kernel.World, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for team := int32(0); team < 2; team++ {
		centerX := -4000.0
		if team == 1 {
			centerX = 4000.0
		}
		for i := 0; i < f.perTeam; i++ {
			pos := kernel.Vec2{X: centerX + rng.Float64()*1000 - 500, Y: rng.Float64()*4000 - 2000}
			heading := 0.0
			if team == 1 {
				heading = math.Pi
			}
			w.AddShip(kernel.NewShip(kernel.ClassFighter, team, pos, heading, seed+int64(team)*100+int64(i), 0))
		}
	}
}

func (furball) Tick(w *kernel.World)                 {}
func (furball) Status(w *kernel.World) kernel.Status { return TournamentStatus(w) }
func (furball) InitialCode(team int32) AgentSpec     { return furball{}.Solution(team) }
func (furball) Solution(team int32) AgentSpec {
	return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassFighter)}
}
func (furball) Lines(w *kernel.World) []kernel.Line { return nil }
func (furball) IsTournament() bool                  { return true }
func (furball) Description() string                 { return "many-fighter free-for-all" }

// fleet is a mixed-class team battle: each team gets a cruiser escorted
// by frigates and fighters.
type fleet struct{}

func (fleet) Init(w *kernel.World, seed int64) {
	for team := int32(0); team < 2; team++ {
		centerX := -6000.0
		heading := 0.0
		if team == 1 {
			centerX = 6000.0
			heading = math.Pi
		}
		w.AddShip(kernel.NewShip(kernel.ClassCruiser, team, kernel.Vec2{X: centerX, Y: 0}, heading, seed+int64(team)*10, 0))
		for i := 0; i < 2; i++ {
			y := float64(i-1) * 1200
			w.AddShip(kernel.NewShip(kernel.ClassFrigate, team, kernel.Vec2{X: centerX * 0.8, Y: y}, heading, seed+int64(team)*10+int64(i)+1, 0))
		}
		for i := 0; i < 4; i++ {
			y := float64(i-2) * 600
			w.AddShip(kernel.NewShip(kernel.ClassFighter, team, kernel.Vec2{X: centerX * 0.6, Y: y}, heading, seed+int64(team)*10+int64(i)+5, 0))
		}
	}
}

func (fleet) Tick(w *kernel.World)                 {}
func (fleet) Status(w *kernel.World) kernel.Status { return TournamentStatus(w) }
func (fleet) InitialCode(team int32) AgentSpec     { return fleet{}.Solution(team) }
func (fleet) Solution(team int32) AgentSpec {
	return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassFighter)}
}
func (fleet) Lines(w *kernel.World) []kernel.Line { return nil }
func (fleet) IsTournament() bool                  { return true }
func (fleet) Description() string                 { return "mixed-class fleet battle" }

// belt is a navigation exercise through a dense asteroid field between
// two fighters.
type belt struct{}

func (belt) Init(w *kernel.World, seed int64) {
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{X: -8000, Y: 0}, 0, seed, 0))
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 1, kernel.Vec2{X: 8000, Y: 0}, math.Pi, seed+1, 0))
	spawnAsteroids(w, seed+2, 60)
}

func (belt) Tick(w *kernel.World)                 {}
func (belt) Status(w *kernel.World) kernel.Status { return TournamentStatus(w) }
func (belt) InitialCode(team int32) AgentSpec     { return belt{}.Solution(team) }
func (belt) Solution(team int32) AgentSpec {
	return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassFighter)}
}
func (belt) Lines(w *kernel.World) []kernel.Line { return nil }
func (belt) IsTournament() bool                  { return true }
func (belt) Description() string                 { return "fighter duel through a dense asteroid belt" }

// basicTest is a minimal smoke-test scenario: two fighters, no asteroids,
// no overlays, registered as both "test" and "basic".
type basicTest struct{ name string }

func (b basicTest) Init(w *kernel.World, seed int64) {
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{X: -1000, Y: 0}, 0, seed, 0))
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 1, kernel.Vec2{X: 1000, Y: 0}, math.Pi, seed+1, 0))
}
func (basicTest) Tick(w *kernel.World)                 {}
func (basicTest) Status(w *kernel.World) kernel.Status { return TournamentStatus(w) }
func (basicTest) InitialCode(team int32) AgentSpec     { return basicTest{}.Solution(team) }
func (basicTest) Solution(team int32) AgentSpec {
	return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassFighter)}
}
func (basicTest) Lines(w *kernel.World) []kernel.Line { return nil }
func (basicTest) IsTournament() bool                  { return true }
func (b basicTest) Description() string               { return b.name }

// frigatePointDefense: a lone frigate must survive a wave of incoming
// missiles, exercising point-defense gunnery against fast projectiles.
type frigatePointDefense struct{}

func (frigatePointDefense) Init(w *kernel.World, seed int64) {
	w.AddShip(kernel.NewShip(kernel.ClassFrigate, 0, kernel.Vec2{}, 0, seed, 0))
	rng := rand.New(rand.NewSource(seed + 1))
	for i := 0; i < 8; i++ {
		angle := rng.Float64() * 2 * math.Pi
		pos := kernel.Vec2{X: 6000 * math.Cos(angle), Y: 6000 * math.Sin(angle)}
		orders := kernel.EncodeOrders(0, 0)
		m := kernel.NewShip(kernel.ClassMissile, 1, pos, angle+math.Pi, seed+int64(i)+2, orders)
		w.AddShip(m)
	}
}
func (frigatePointDefense) Tick(w *kernel.World)                 {}
func (frigatePointDefense) Status(w *kernel.World) kernel.Status { return TutorialStatus(w) }
func (frigatePointDefense) InitialCode(team int32) AgentSpec {
	if team == 0 {
		return AgentSpec{}
	}
	return frigatePointDefense{}.Solution(team)
}
func (frigatePointDefense) Solution(team int32) AgentSpec {
	if team == 0 {
		return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassFrigate)}
	}
	return AgentSpec{Kind: KindInProcess, NewAgent: referenceConstructor(kernel.ClassMissile)}
}
func (frigatePointDefense) Lines(w *kernel.World) []kernel.Line { return nil }
func (frigatePointDefense) IsTournament() bool                  { return false }
func (frigatePointDefense) Description() string                 { return "frigate defends against an incoming missile wave" }

// stressSpawner builds {asteroid,bullet,missile}-stress scenarios: each
// spawns a large flat population of one ship class to load-test the
// spatial grid and arena under volume rather than exercising tactics.
// bullet-stress spawns ClassTarget ships; it creates no bullets.
type stressSpawner struct {
	name  string
	class kernel.ShipClass
	count int
}

func (s stressSpawner) Init(w *kernel.World, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, seed, 0))
	for i := 0; i < s.count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		radius := rng.Float64() * (w.Size / 2)
		pos := kernel.Vec2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		w.AddShip(kernel.NewShip(s.class, 1, pos, rng.Float64()*2*math.Pi, seed+int64(i)+1, 0))
	}
}
func (stressSpawner) Tick(w *kernel.World)                 {}
func (stressSpawner) Status(w *kernel.World) kernel.Status { return kernel.Running() }
func (stressSpawner) InitialCode(team int32) AgentSpec     { return AgentSpec{} }
func (stressSpawner) Solution(team int32) AgentSpec        { return AgentSpec{} }
func (stressSpawner) Lines(w *kernel.World) []kernel.Line  { return nil }
func (stressSpawner) IsTournament() bool                   { return false }
func (s stressSpawner) Description() string                { return s.name + " load test" }

func init() {
	Register("welcome", func() Scenario { return welcome{} })
	Register("gunnery", func() Scenario { return gunnery{} })
	Register("furball", func() Scenario { return furball{perTeam: 6} })
	Register("fleet", func() Scenario { return fleet{} })
	Register("belt", func() Scenario { return belt{} })
	Register("test", func() Scenario { return basicTest{name: "minimal kernel smoke test"} })
	Register("basic", func() Scenario { return basicTest{name: "basic two-fighter duel"} })
	Register("frigate_point_defense", func() Scenario { return frigatePointDefense{} })
	Register("asteroid-stress", func() Scenario { return stressSpawner{name: "asteroid", class: kernel.ClassAsteroid, count: 500} })
	Register("bullet-stress", func() Scenario { return stressSpawner{name: "bullet", class: kernel.ClassTarget, count: 200} })
	Register("missile-stress", func() Scenario { return stressSpawner{name: "missile", class: kernel.ClassMissile, count: 300} })
}
