package scenario

import (
	"testing"

	"orbitsim/internal/kernel"
)

// TestWelcomeReplenishesAsteroidsWhenThin checks welcome's Tick tops the
// asteroid population back up once it drops under the target count, on a
// tick-count boundary.
func TestWelcomeReplenishesAsteroidsWhenThin(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	sc := welcome{}
	sc.Init(w, 1)

	// Drain every asteroid to simulate a thinned-out field.
	var handles []kernel.Handle
	w.Ships.Each(func(h kernel.Handle, s *kernel.Ship) {
		if s.Data.Class == kernel.ClassAsteroid {
			handles = append(handles, h)
		}
	})
	for _, h := range handles {
		w.Ships.Remove(h)
	}

	w.TickCount = 60 // land on the replenishment boundary (%60 == 0)
	sc.Tick(w)

	count := 0
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		if s.Data.Class == kernel.ClassAsteroid {
			count++
		}
	})
	if count == 0 {
		t.Error("expected welcome.Tick to replenish asteroids once thinned")
	}
}

// TestGunnerySpawnsFiveStationaryTargets checks Init lays out a row of
// five immobile targets opposite the lone fighter.
func TestGunnerySpawnsFiveStationaryTargets(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	gunnery{}.Init(w, 1)

	targets := 0
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		if s.Data.Class == kernel.ClassTarget {
			targets++
		}
	})
	if targets != 5 {
		t.Errorf("targets = %d, want 5", targets)
	}
}

// TestFurballSpawnsPerTeamCount checks Init spawns exactly perTeam
// fighters for each of the two teams.
func TestFurballSpawnsPerTeamCount(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	f := furball{perTeam: 4}
	f.Init(w, 1)

	counts := map[int32]int{}
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) { counts[s.Team]++ })
	if counts[0] != 4 || counts[1] != 4 {
		t.Errorf("team counts = %v, want 4 each", counts)
	}
}

// TestFleetSpawnsCruiserEscortedByFrigatesAndFighters checks each team
// gets one cruiser, two frigates, and four fighters.
func TestFleetSpawnsCruiserEscortedByFrigatesAndFighters(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	fleet{}.Init(w, 1)

	classCounts := map[kernel.ShipClass]int{}
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) { classCounts[s.Data.Class]++ })
	if classCounts[kernel.ClassCruiser] != 2 {
		t.Errorf("cruisers = %d, want 2 (one per team)", classCounts[kernel.ClassCruiser])
	}
	if classCounts[kernel.ClassFrigate] != 4 {
		t.Errorf("frigates = %d, want 4 (two per team)", classCounts[kernel.ClassFrigate])
	}
	if classCounts[kernel.ClassFighter] != 8 {
		t.Errorf("fighters = %d, want 8 (four per team)", classCounts[kernel.ClassFighter])
	}
}

// TestBeltSpawnsTwoFightersAndAnAsteroidField checks the navigation
// scenario seeds both fighters plus a dense asteroid belt between them.
func TestBeltSpawnsTwoFightersAndAnAsteroidField(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	belt{}.Init(w, 1)

	fighters, asteroids := 0, 0
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		switch s.Data.Class {
		case kernel.ClassFighter:
			fighters++
		case kernel.ClassAsteroid:
			asteroids++
		}
	})
	if fighters != 2 {
		t.Errorf("fighters = %d, want 2", fighters)
	}
	if asteroids != 60 {
		t.Errorf("asteroids = %d, want 60", asteroids)
	}
}

// TestFrigatePointDefenseSpawnsIncomingMissileWave checks the lone
// frigate faces exactly eight inbound missiles, each already ordered
// toward the origin.
func TestFrigatePointDefenseSpawnsIncomingMissileWave(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	frigatePointDefense{}.Init(w, 1)

	frigates, missiles := 0, 0
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		switch s.Data.Class {
		case kernel.ClassFrigate:
			frigates++
		case kernel.ClassMissile:
			missiles++
			if s.Orders != kernel.EncodeOrders(0, 0) {
				t.Errorf("missile orders = %v, want the encoded origin", s.Orders)
			}
		}
	})
	if frigates != 1 {
		t.Errorf("frigates = %d, want 1", frigates)
	}
	if missiles != 8 {
		t.Errorf("missiles = %d, want 8", missiles)
	}
}

// TestStressSpawnerPopulatesRequestedCount checks a stress scenario
// produces exactly the configured entity count in addition to the lone
// observer fighter.
func TestStressSpawnerPopulatesRequestedCount(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	s := stressSpawner{name: "asteroid", class: kernel.ClassAsteroid, count: 50}
	s.Init(w, 1)

	count := 0
	w.Ships.Each(func(_ kernel.Handle, sh *kernel.Ship) {
		if sh.Data.Class == kernel.ClassAsteroid {
			count++
		}
	})
	if count != 50 {
		t.Errorf("asteroid count = %d, want 50", count)
	}
}

// TestCatalogScenariosAllRegistered checks every name defined by this
// file's init() resolves through the shared registry.
func TestCatalogScenariosAllRegistered(t *testing.T) {
	names := []string{
		"welcome", "gunnery", "furball", "fleet", "belt", "test", "basic",
		"frigate_point_defense", "asteroid-stress", "bullet-stress", "missile-stress",
	}
	for _, n := range names {
		if _, err := Get(n); err != nil {
			t.Errorf("Get(%q) failed: %v", n, err)
		}
	}
}
