package scenario

import (
	"math"
	"testing"

	"orbitsim/internal/kernel"
)

// TestDuelInitSpawnsOneShipPerTeamFacingEachOther checks a duel spawns
// exactly one ship per team on opposite sides of the arena, heading
// toward one another.
func TestDuelInitSpawnsOneShipPerTeamFacingEachOther(t *testing.T) {
	d := &duel{classA: kernel.ClassFighter, classB: kernel.ClassFighter, spawnDistance: 4000}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	d.Init(w, 1)

	if w.Ships.Len() != 2 {
		t.Fatalf("duel.Init spawned %d ships, want 2", w.Ships.Len())
	}

	counts := map[int32]int{}
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		counts[s.Team]++
		if s.Position.Distance(kernel.Vec2{}) != d.spawnDistance/2 {
			t.Errorf("ship for team %d at %v, want %v from center", s.Team, s.Position, d.spawnDistance/2)
		}
		if (s.Team == 0 && s.Heading != 0) || (s.Team == 1 && s.Heading != math.Pi) {
			t.Errorf("ship for team %d has heading %v, want it facing the other ship", s.Team, s.Heading)
		}
	})
	if counts[0] != 1 || counts[1] != 1 {
		t.Errorf("team counts = %v, want exactly one per team", counts)
	}
}

// TestDuelSolutionMatchesClassPerTeam checks Solution returns a reference
// agent constructor for the correct class per team.
func TestDuelSolutionMatchesClassPerTeam(t *testing.T) {
	d := &duel{classA: kernel.ClassFrigate, classB: kernel.ClassCruiser, spawnDistance: 8000, capitalShip: true}

	specA := d.Solution(0)
	specB := d.Solution(1)
	if specA.Kind != KindInProcess || specA.NewAgent == nil {
		t.Error("Solution(0) should be an in-process reference agent")
	}
	if specB.Kind != KindInProcess || specB.NewAgent == nil {
		t.Error("Solution(1) should be an in-process reference agent")
	}
}

// TestDuelCapitalShipUsesCapitalShipStatus checks a capital-ship duel
// ignores a fighter escort when evaluating the match outcome.
func TestDuelCapitalShipUsesCapitalShipStatus(t *testing.T) {
	d := &duel{classA: kernel.ClassFrigate, classB: kernel.ClassCruiser, spawnDistance: 8000, capitalShip: true}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	w.AddShip(kernel.NewShip(kernel.ClassFrigate, 0, kernel.Vec2{}, 0, 1, 0))
	w.AddShip(kernel.NewShip(kernel.ClassFighter, 1, kernel.Vec2{}, 0, 2, 0)) // escort, shouldn't count

	got := d.Status(w)
	if got.Kind != kernel.StatusVictory || got.Team != 0 {
		t.Errorf("Status = %+v, want victory for team 0 (fighter escort ignored)", got)
	}
}
