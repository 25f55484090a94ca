package kernel

import "math"

// Contact is the strongest radar return this tick: position, velocity and
// class frozen at the instant of sweep (§4.3, GLOSSARY).
type Contact struct {
	Position Vec2
	Velocity Vec2
	Class    ShipClass
}

// radarMinDetectable is the minimum detectable-power threshold below which
// a return is not reported, frozen per SPEC_FULL.md's SUPPLEMENTED
// FEATURES cross-check against the oort3 radar model.
const radarMinDetectable = 1e-8

// radarReturn computes the strength of a return from a target with the
// given radar cross-section at distance, per the signal model frozen in
// SPEC_FULL.md: return = cross_section / (4*pi*distance^2).
func radarReturn(crossSection, distance float64) float64 {
	if distance < 1 {
		distance = 1
	}
	return crossSection / (4 * math.Pi * distance * distance)
}

// effectiveRange scales base detection range up as the beam narrows, per
// SPEC_FULL.md's frozen beam-narrowing formula:
// effective_range = base_range / sqrt(width / max_width).
func effectiveRange(baseRange, width, maxWidth float64) float64 {
	if width <= 0 {
		width = 1e-6
	}
	return baseRange / math.Sqrt(width/maxWidth)
}

const radarBaseRange = 5000.0
const radarMaxWidth = 2 * math.Pi

// Sweep performs one radar sweep for the ship at self: it takes candidate
// targets (every other ship in the broad-phase grid as last rebuilt,
// subject to exclude), keeps those whose bearing from self's radar origin
// lies within [heading-width/2, heading+width/2] (both ends included),
// and reports only the strongest
// return (I5, P6). Absent a set call this tick, the radar's previous
// heading/width persist (the caller is responsible for not resetting
// them between ticks).
func (w *World) Sweep(self Handle, exclude func(Handle) bool) (Contact, bool) {
	ship, ok := w.Ships.Get(self)
	if !ok || !ship.Radar.Present {
		return Contact{}, false
	}

	worldHeading := NormalizeAngle(ship.Heading + ship.Radar.HeadingLocal)
	halfWidth := ship.Radar.Width / 2

	rng := effectiveRange(radarBaseRange, ship.Radar.Width, radarMaxWidth)
	nearby := w.shipsNear(ship.Position, rng, self)

	var best Contact
	var bestReturn float64
	found := false

	for _, h := range nearby {
		if exclude != nil && exclude(h) {
			continue
		}
		target, ok := w.Ships.Get(h)
		if !ok || !target.Alive() {
			continue
		}
		if ship.Radar.TargetFilter != nil && !ship.Radar.TargetFilter(target.Data.Class) {
			continue
		}

		toTarget := target.Position.Sub(ship.Position)
		distance := toTarget.Length()
		if distance < 1e-6 {
			continue
		}
		bearing := toTarget.Heading()
		if math.Abs(AngleDiff(worldHeading, bearing)) > halfWidth {
			continue
		}

		ret := radarReturn(target.Data.RadarCrossSection, distance)
		if ret < radarMinDetectable {
			continue
		}
		if !found || ret > bestReturn {
			found = true
			bestReturn = ret
			best = Contact{Position: target.Position, Velocity: target.Velocity, Class: target.Data.Class}
		}
	}

	return best, found
}
