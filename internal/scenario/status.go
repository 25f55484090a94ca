package scenario

import "orbitsim/internal/kernel"

// teamAliveCounts tallies surviving ships per team. When excludeProjectiles
// is set, missiles and torpedoes don't count as "surviving ships" for
// tutorial win/fail evaluation (§4.6: "non-missile/torpedo ships").
func teamAliveCounts(w *kernel.World, excludeProjectiles bool) map[int32]int {
	counts := make(map[int32]int)
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		if !s.Alive() {
			return
		}
		if excludeProjectiles && (s.Data.Class == kernel.ClassMissile || s.Data.Class == kernel.ClassTorpedo) {
			return
		}
		counts[s.Team]++
	})
	return counts
}

func teamAliveCountsByClass(w *kernel.World, allowed map[kernel.ShipClass]bool) map[int32]int {
	counts := make(map[int32]int)
	w.Ships.Each(func(_ kernel.Handle, s *kernel.Ship) {
		if !s.Alive() || !allowed[s.Data.Class] {
			return
		}
		counts[s.Team]++
	})
	return counts
}

// TutorialStatus resolves the same way a tournament does — Draw once no
// team has a surviving non-missile/torpedo ship, Victory once exactly one
// team does, Running while 2+ teams still hold the field, Draw at
// MAX_TICKS otherwise — except any Victory for a team other than 0
// becomes Failed (§4.6).
func TutorialStatus(w *kernel.World) kernel.Status {
	status := statusFromCounts(w, teamAliveCounts(w, true))
	if status.Kind == kernel.StatusVictory && status.Team != 0 {
		return kernel.Failed()
	}
	return status
}

// TournamentStatus: only fighter/frigate/cruiser survivors of teams 0-1
// count; draw once MAX_TICKS is reached without a sole survivor (§4.6).
func TournamentStatus(w *kernel.World) kernel.Status {
	counts := teamAliveCountsByClass(w, map[kernel.ShipClass]bool{
		kernel.ClassFighter: true, kernel.ClassFrigate: true, kernel.ClassCruiser: true,
	})
	for team := range counts {
		if team != 0 && team != 1 {
			delete(counts, team)
		}
	}
	return statusFromCounts(w, counts)
}

// CapitalShipTournamentStatus: only frigate/cruiser survivors count.
func CapitalShipTournamentStatus(w *kernel.World) kernel.Status {
	return rosterStatus(w, map[kernel.ShipClass]bool{
		kernel.ClassFrigate: true, kernel.ClassCruiser: true,
	})
}

func rosterStatus(w *kernel.World, allowed map[kernel.ShipClass]bool) kernel.Status {
	return statusFromCounts(w, teamAliveCountsByClass(w, allowed))
}

// statusFromCounts resolves to Victory once exactly one team has a
// nonzero count, Draw once none do, Draw again at MAX_TICKS if 2+ teams
// are still contesting, and Running otherwise.
func statusFromCounts(w *kernel.World, counts map[int32]int) kernel.Status {
	survivors := int32(-1)
	numSurvivingTeams := 0
	for team, n := range counts {
		if n > 0 {
			numSurvivingTeams++
			survivors = team
		}
	}
	switch {
	case numSurvivingTeams == 1:
		return kernel.Victory(survivors)
	case numSurvivingTeams == 0:
		return kernel.Draw()
	case w.TickCount >= kernel.DefaultMaxTicks:
		return kernel.Draw()
	default:
		return kernel.Running()
	}
}
