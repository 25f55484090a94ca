package scenario

import (
	"testing"

	"orbitsim/internal/kernel"
)

// TestMissileTestInitSpawnsFirstIterationPair checks Init lays out one
// target and one pre-ordered missile for iteration zero.
func TestMissileTestInitSpawnsFirstIterationPair(t *testing.T) {
	m := &missileTest{}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	m.Init(w, 7)

	if w.Ships.Len() != 2 {
		t.Fatalf("expected 2 ships after Init, got %d", w.Ships.Len())
	}
	if _, ok := w.Ships.Get(m.target); !ok {
		t.Error("target handle from Init should resolve")
	}
	if _, ok := w.Ships.Get(m.missile); !ok {
		t.Error("missile handle from Init should resolve")
	}
}

// TestMissileTestAdvanceOnTargetDestroyedCountsSuccess checks removing
// the target ship and ticking records a success and advances to the next
// iteration (or finishes after the last one).
func TestMissileTestAdvanceOnTargetDestroyedCountsSuccess(t *testing.T) {
	m := &missileTest{}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	m.Init(w, 7)

	w.Ships.Remove(m.target)
	m.Tick(w)

	if m.successes != 1 {
		t.Errorf("successes = %d, want 1", m.successes)
	}
	if m.iteration != 1 {
		t.Errorf("iteration = %d, want 1 (advanced once)", m.iteration)
	}
	if m.finished {
		t.Error("should not finish after only 1 of 10 iterations")
	}
}

// TestMissileTestAdvanceOnTimeoutCountsFailure checks a target that
// outlives missileTestMaxTicks is recorded as a failure.
func TestMissileTestAdvanceOnTimeoutCountsFailure(t *testing.T) {
	m := &missileTest{}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	m.Init(w, 7)

	w.TickCount = m.iterStart + missileTestMaxTicks + 1
	m.Tick(w)

	if m.failures != 1 {
		t.Errorf("failures = %d, want 1", m.failures)
	}
}

// TestMissileTestFinishesAfterTenIterationsAllSuccess checks ten
// consecutive successes produce a finished, Victory-status scenario.
func TestMissileTestFinishesAfterTenIterationsAllSuccess(t *testing.T) {
	m := &missileTest{}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	m.Init(w, 7)

	for i := 0; i < missileTestIterations; i++ {
		w.Ships.Remove(m.target)
		m.Tick(w)
	}

	if !m.finished {
		t.Fatal("expected the scenario to be finished after 10 iterations")
	}
	status := m.Status(w)
	if status.Kind != kernel.StatusVictory {
		t.Errorf("status = %+v, want victory when every iteration succeeded", status)
	}
}

// TestMissileTestFailsOverallOnAnySingleFailure checks one timed-out
// iteration among otherwise-successful ones still fails the scenario.
func TestMissileTestFailsOverallOnAnySingleFailure(t *testing.T) {
	m := &missileTest{}
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	m.Init(w, 7)

	// First iteration times out.
	w.TickCount = m.iterStart + missileTestMaxTicks + 1
	m.Tick(w)

	// Remaining iterations all succeed.
	for m.iteration < missileTestIterations {
		w.Ships.Remove(m.target)
		m.Tick(w)
	}

	status := m.Status(w)
	if status.Kind != kernel.StatusFailed {
		t.Errorf("status = %+v, want failed when any iteration timed out", status)
	}
}

// TestMissileTestIterSeedIsDeterministicPerIteration checks the reseed
// formula only depends on baseSeed and the current iteration, so replays
// with the same top-level seed reproduce identical sub-iteration seeds.
func TestMissileTestIterSeedIsDeterministicPerIteration(t *testing.T) {
	a := &missileTest{baseSeed: 555, iteration: 3}
	b := &missileTest{baseSeed: 555, iteration: 3}
	if a.iterSeed() != b.iterSeed() {
		t.Errorf("iterSeed() should be deterministic: %d vs %d", a.iterSeed(), b.iterSeed())
	}
	c := &missileTest{baseSeed: 555, iteration: 4}
	if a.iterSeed() == c.iterSeed() {
		t.Error("different iterations should produce different seeds")
	}
}
