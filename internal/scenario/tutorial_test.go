package scenario

import (
	"testing"

	"orbitsim/internal/kernel"
)

// TestTutorialInitSpawnsStudentAndTarget checks Init places exactly one
// student ship on team 0 and one target on team 1.
func TestTutorialInitSpawnsStudentAndTarget(t *testing.T) {
	sc := &tutorial{number: 1, studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	sc.Init(w, 42)

	var teams []int32
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) { teams = append(teams, s.Team) })
	if len(teams) != 2 {
		t.Fatalf("expected 2 ships, got %d", len(teams))
	}
	if teams[0] != 0 || teams[1] != 1 {
		t.Errorf("teams = %v, want [0 1] (student, then target)", teams)
	}
}

// TestTutorialInitialCodeLeavesStudentBlank checks team 0 gets an empty
// AgentSpec (the student supplies their own code).
func TestTutorialInitialCodeLeavesStudentBlank(t *testing.T) {
	sc := &tutorial{number: 1, studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget}
	spec := sc.InitialCode(0)
	if spec.NewAgent != nil || spec.BinaryPath != "" {
		t.Errorf("team 0 InitialCode should be empty, got %+v", spec)
	}
}

// TestTutorialSolutionArmsOpponentOnlyWhenConfigured checks the dummy
// target stays inert unless opponentIsRef is set, in which case it gets a
// reference agent for its own class.
func TestTutorialSolutionArmsOpponentOnlyWhenConfigured(t *testing.T) {
	inert := &tutorial{studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget}
	spec := inert.Solution(1)
	if spec.NewAgent != nil {
		t.Error("an inert dummy target should have no agent")
	}

	armed := &tutorial{studentClass: kernel.ClassFighter, targetClass: kernel.ClassFighter, opponentIsRef: true}
	spec = armed.Solution(1)
	if spec.Kind != KindInProcess || spec.NewAgent == nil {
		t.Error("an opponentIsRef target should get an in-process reference agent")
	}
}

// TestTutorialStatusDelegatesToTutorialStatus checks the scenario's
// Status reuses the shared TutorialStatus lattice rather than
// reimplementing survivor counting.
func TestTutorialStatusDelegatesToTutorialStatus(t *testing.T) {
	sc := &tutorial{studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	sc.Init(w, 1)

	got := sc.Status(w)
	want := TutorialStatus(w)
	if got.Kind != want.Kind {
		t.Errorf("Status() = %+v, want it to match TutorialStatus() = %+v", got, want)
	}
}

// TestTutorialLinesOnlyDrawsWhenCircleRequested checks the patrol-circle
// overlay is only emitted for scenarios configured with targetCircle.
func TestTutorialLinesOnlyDrawsWhenCircleRequested(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)

	plain := &tutorial{studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget}
	if lines := plain.Lines(w); lines != nil {
		t.Errorf("expected no overlay lines without targetCircle, got %d", len(lines))
	}

	withCircle := &tutorial{studentClass: kernel.ClassFighter, targetClass: kernel.ClassTarget, targetCircle: true, circleRadius: 1000}
	if lines := withCircle.Lines(w); len(lines) == 0 {
		t.Error("expected overlay lines when targetCircle is set")
	}
}

// TestTutorialRegistryCoversAllEleven checks every tutorial01..tutorial11
// name resolves to a distinct registered scenario.
func TestTutorialRegistryCoversAllEleven(t *testing.T) {
	names := []string{
		"tutorial01", "tutorial02", "tutorial03", "tutorial04", "tutorial05",
		"tutorial06", "tutorial07", "tutorial08", "tutorial09", "tutorial10", "tutorial11",
	}
	for _, n := range names {
		if _, err := Get(n); err != nil {
			t.Errorf("Get(%q) failed: %v", n, err)
		}
	}
}
