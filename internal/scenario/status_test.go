package scenario

import (
	"testing"

	"orbitsim/internal/kernel"
)

func spawn(w *kernel.World, class kernel.ShipClass, team int32) kernel.Handle {
	return w.AddShip(kernel.NewShip(class, team, kernel.Vec2{}, 0, 1, 0))
}

// TestTutorialStatusVictory checks team 0 wins once it alone has
// surviving non-projectile ships.
func TestTutorialStatusVictory(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 0)

	got := TutorialStatus(w)
	if got.Kind != kernel.StatusVictory || got.Team != 0 {
		t.Errorf("TutorialStatus = %+v, want victory for team 0", got)
	}
}

// TestTutorialStatusFailedOnNoSurvivors checks an empty team 0 roster
// fails the tutorial outright.
func TestTutorialStatusFailedOnNoSurvivors(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 1)

	if got := TutorialStatus(w); got.Kind != kernel.StatusFailed {
		t.Errorf("TutorialStatus = %+v, want failed", got)
	}
}

// TestTutorialStatusRunningWhileBothSidesAlive checks an opposing
// survivor does NOT fail the tutorial outright while team 0 also still
// has survivors — the match stays Running until one side is eliminated.
func TestTutorialStatusRunningWhileBothSidesAlive(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 0)
	spawn(w, kernel.ClassFighter, 1)

	if got := TutorialStatus(w); got.Kind != kernel.StatusRunning {
		t.Errorf("TutorialStatus = %+v, want running while both sides still have survivors", got)
	}
}

// TestTutorialStatusFailedOnceTeamZeroEliminated checks the tutorial
// resolves to Failed once team 0 is wiped out and exactly one opposing
// team remains — the point at which the match is actually decided.
func TestTutorialStatusFailedOnceTeamZeroEliminated(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 1)

	if got := TutorialStatus(w); got.Kind != kernel.StatusFailed {
		t.Errorf("TutorialStatus = %+v, want failed once only an opposing team survives", got)
	}
}

// TestTutorialStatusDrawAtMaxTicksWithBothSidesAlive checks a tutorial
// that never resolves is drawn at MAX_TICKS rather than running forever
// or silently failing.
func TestTutorialStatusDrawAtMaxTicksWithBothSidesAlive(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 0)
	spawn(w, kernel.ClassFighter, 1)
	w.TickCount = kernel.DefaultMaxTicks

	if got := TutorialStatus(w); got.Kind != kernel.StatusDraw {
		t.Errorf("TutorialStatus at MAX_TICKS = %+v, want draw", got)
	}
}

// TestTutorialStatusIgnoresProjectiles checks missiles/torpedoes don't
// count as "surviving ships" for either side.
func TestTutorialStatusIgnoresProjectiles(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 0)
	spawn(w, kernel.ClassMissile, 1)

	if got := TutorialStatus(w); got.Kind != kernel.StatusVictory {
		t.Errorf("TutorialStatus = %+v, want victory (opposing missile doesn't count)", got)
	}
}

// TestTournamentStatusRunningWithBothTeamsAlive checks the match keeps
// running while both teams still have roster-eligible survivors.
func TestTournamentStatusRunningWithBothTeamsAlive(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 0)
	spawn(w, kernel.ClassFighter, 1)

	if got := TournamentStatus(w); got.Kind != kernel.StatusRunning {
		t.Errorf("TournamentStatus = %+v, want running", got)
	}
}

// TestTournamentStatusVictoryForSoleSurvivor checks victory once only one
// team has roster-eligible survivors left.
func TestTournamentStatusVictoryForSoleSurvivor(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFrigate, 1)

	got := TournamentStatus(w)
	if got.Kind != kernel.StatusVictory || got.Team != 1 {
		t.Errorf("TournamentStatus = %+v, want victory for team 1", got)
	}
}

// TestTournamentStatusDrawWithNoSurvivors checks a wipeout of both
// rosters is a draw, not a victory or a stuck running state.
func TestTournamentStatusDrawWithNoSurvivors(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	if got := TournamentStatus(w); got.Kind != kernel.StatusDraw {
		t.Errorf("TournamentStatus with no ships = %+v, want draw", got)
	}
}

// TestTournamentStatusDrawAtMaxTicks checks a match that reaches
// MAX_TICKS with both rosters still alive draws rather than running
// forever.
func TestTournamentStatusDrawAtMaxTicks(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFighter, 0)
	spawn(w, kernel.ClassFighter, 1)
	for w.TickCount < kernel.DefaultMaxTicks {
		w.Tick(nil, 1.0/kernel.DefaultTickRate)
	}

	if got := TournamentStatus(w); got.Kind != kernel.StatusDraw {
		t.Errorf("TournamentStatus at MAX_TICKS = %+v, want draw", got)
	}
}

// TestCapitalShipTournamentStatusIgnoresFighters checks only
// frigate/cruiser survivors count toward a capital-ship matchup.
func TestCapitalShipTournamentStatusIgnoresFighters(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	spawn(w, kernel.ClassFrigate, 0)
	spawn(w, kernel.ClassFighter, 1) // present but doesn't count

	got := CapitalShipTournamentStatus(w)
	if got.Kind != kernel.StatusVictory || got.Team != 0 {
		t.Errorf("CapitalShipTournamentStatus = %+v, want victory for team 0", got)
	}
}
