package kernel

import "sort"

// integrateShip applies one ship's clamped intent for dt and bounces it
// elastically off the four walls (§3: "Four walls are elastic
// (restitution 1.0)", §4.1 steps 2-3).
func integrateShip(ship *Ship, in *Intent, worldSize float64, dt float64) {
	if in.HasAccel {
		localAccel := ClampAccel(in.Accelerate, ship.Data)
		worldAccel := localAccel.Rotate(ship.Heading)
		ship.Velocity = ship.Velocity.Add(worldAccel.Scale(dt))
	}
	if in.HasTorque {
		torque := ClampTorque(in.Torque, ship.Data)
		ship.AngularVelocity += torque * dt
	}

	ship.Position = ship.Position.Add(ship.Velocity.Scale(dt))
	ship.Heading = NormalizeAngle(ship.Heading + ship.AngularVelocity*dt)

	half := worldSize / 2
	if ship.Position.X > half {
		ship.Position.X = half
		ship.Velocity.X = -ship.Velocity.X
	} else if ship.Position.X < -half {
		ship.Position.X = -half
		ship.Velocity.X = -ship.Velocity.X
	}
	if ship.Position.Y > half {
		ship.Position.Y = half
		ship.Velocity.Y = -ship.Velocity.Y
	} else if ship.Position.Y < -half {
		ship.Position.Y = -half
		ship.Velocity.Y = -ship.Velocity.Y
	}
}

// shipCollisionRadius is the fixed collision envelope used for ship-ship
// and ship-bullet narrow-phase checks (no per-class hull size is named in
// the data model, so one fixed radius is used uniformly, matching the
// frozen damage table's own simplification, see SPEC_FULL.md).
const shipCollisionRadius = 30.0

// integratePhysics is the `physics.integrate(Δt)` phase of the §2 control
// flow: apply each ship's clamped accelerate/torque intent, advance every
// ship and bullet for dt, and bounce off the world's elastic walls.
// Ships are processed in ascending handle order (tie-break rule, §4.1).
func (w *World) integratePhysics(intents map[uint32]*Intent, dt float64) {
	for _, h := range w.Ships.Handles() {
		ship := w.Ships.GetPtr(h)
		if ship == nil {
			continue
		}
		in := intents[h.Index]
		if in == nil {
			in = &Intent{}
		}
		integrateShip(ship, in, w.Size, dt)
		if ship.Data.TTL > 0 {
			ship.TTLRemaining -= dt
		}
	}
	w.advanceBullets(dt)
}

// weaponsUpdate is the `weapons.update` phase: gun/launcher cooldowns tick
// down, radar heading/width intents are applied, and fire/launch/explode
// intents are resolved against the just-integrated positions, in
// ascending handle order.
func (w *World) weaponsUpdate(intents map[uint32]*Intent, dt float64) {
	w.rebuildGrid() // explode()'s area pulse needs current post-integration positions
	for _, h := range w.Ships.Handles() {
		ship := w.Ships.GetPtr(h)
		if ship == nil {
			continue
		}
		tickGuns(ship, dt)

		in := intents[h.Index]
		if in == nil || !ship.Alive() {
			continue
		}
		if in.HasRadarHdg {
			ship.Radar.HeadingLocal = in.RadarHeading
		}
		if in.HasRadarWid {
			if in.RadarWidth <= 0 {
				w.Events.Emit(w.TickCount, EventInvalidIntent, h, "set_radar_width: width <= 0")
			} else {
				ship.Radar.Width = in.RadarWidth
			}
		}
		for _, g := range in.Guns {
			w.fireGun(h, ship, g)
		}
		for _, l := range in.Launches {
			w.launchMissile(h, ship, l)
		}
		if in.Explode {
			w.explode(h, ship)
		}
	}
}

// advanceBullets moves every live bullet by dt and marks expired ones for
// removal (§4.1 step 4).
func (w *World) advanceBullets(dt float64) {
	var dead []Handle
	w.Bullets.Each(func(h Handle, b *Bullet) {
		if !b.Update(dt) {
			dead = append(dead, h)
		}
	})
	for _, h := range dead {
		w.Bullets.Remove(h)
	}
}

// sweepRadar is the `radar.sweep` phase: every ship with a radar component
// gets one sweep against the post-integration, post-weapons-update world,
// and the result is cached on the ship for its agent to read via scan() at
// the start of next tick (§5 ordering: same-tick intents are mutually
// invisible, so a sweep's result is only ever observed one tick later).
func (w *World) sweepRadar() {
	w.rebuildGrid()
	for _, h := range w.Ships.Handles() {
		ship := w.Ships.GetPtr(h)
		if ship == nil || !ship.Radar.Present {
			continue
		}
		team := ship.Team
		contact, ok := w.Sweep(h, func(other Handle) bool {
			os, found := w.Ships.Get(other)
			return found && os.Team == team
		})
		ship.HasContact = ok
		if ok {
			ship.LastContact = contact
		}
	}
}

// resolveCollisions implements §4.1 step 5: ship-bullet and ship-ship
// contact resolution. Bullets hitting the same ship within one step apply
// damage in ascending bullet-handle order; simultaneous ship-ship
// collisions exchange momentum symmetrically before health reduction.
func (w *World) resolveCollisions() {
	bulletHandles := w.Bullets.Handles()
	sort.Slice(bulletHandles, func(i, j int) bool { return bulletHandles[i].Index < bulletHandles[j].Index })

	var spentBullets []Handle
	for _, bh := range bulletHandles {
		bullet := w.Bullets.GetPtr(bh)
		if bullet == nil {
			continue
		}
		hit := w.shipsNear(bullet.Position, shipCollisionRadius, Handle{})
		for _, sh := range hit {
			ship := w.Ships.GetPtr(sh)
			if ship == nil || !ship.Alive() || ship.Team == bullet.Team {
				continue
			}
			if bullet.Position.Distance(ship.Position) > shipCollisionRadius {
				continue
			}
			relVel := bullet.Velocity.Sub(ship.Velocity)
			damage := bullet.Mass * relVel.LengthSq() * DamageCoefficient
			ship.Health -= damage
			if ship.Health <= 0 {
				ship.Health = 0
				w.Events.Emit(w.TickCount, EventShipDestroyed, sh, "bullet")
			}
			spentBullets = append(spentBullets, bh)
			break
		}
	}
	for _, bh := range spentBullets {
		w.Bullets.Remove(bh)
	}

	shipHandles := w.Ships.Handles()
	for i := 0; i < len(shipHandles); i++ {
		a := w.Ships.GetPtr(shipHandles[i])
		if a == nil || !a.Alive() {
			continue
		}
		for j := i + 1; j < len(shipHandles); j++ {
			b := w.Ships.GetPtr(shipHandles[j])
			if b == nil || !b.Alive() {
				continue
			}
			dist := a.Position.Distance(b.Position)
			minDist := shipCollisionRadius * 2
			if dist >= minDist || dist < 1e-6 {
				continue
			}
			normal := b.Position.Sub(a.Position).Normalize()
			overlap := minDist - dist
			a.Position = a.Position.Sub(normal.Scale(overlap / 2))
			b.Position = b.Position.Add(normal.Scale(overlap / 2))

			// Symmetric momentum exchange (equal-mass elastic swap along
			// the collision normal) before any health effects.
			avn := a.Velocity.Dot(normal)
			bvn := b.Velocity.Dot(normal)
			a.Velocity = a.Velocity.Add(normal.Scale(bvn - avn))
			b.Velocity = b.Velocity.Add(normal.Scale(avn - bvn))
		}
	}
}

// collectGarbage frees zero-health ships (past TTL or destroyed) and
// relies on advanceBullets for bullet cleanup (§4.1 step 6).
func (w *World) collectGarbage() {
	var dead []Handle
	w.Ships.Each(func(h Handle, s *Ship) {
		if !s.Alive() {
			dead = append(dead, h)
			return
		}
		if s.Data.TTL > 0 && s.TTLRemaining <= 0 {
			dead = append(dead, h)
		}
	})
	for _, h := range dead {
		w.Ships.Remove(h)
	}
}
