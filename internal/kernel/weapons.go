package kernel

// tickGuns decrements every gun/launcher cycle timer by dt (§4.2: "all gun
// timers are decremented by Δt each tick down to 0").
func tickGuns(ship *Ship, dt float64) {
	for i := range ship.Data.Guns {
		g := &ship.Data.Guns[i]
		if g.CycleTimeRemaining > 0 {
			g.CycleTimeRemaining -= dt
			if g.CycleTimeRemaining < 0 {
				g.CycleTimeRemaining = 0
			}
		}
	}
	for i := range ship.Data.Launchers {
		l := &ship.Data.Launchers[i]
		if l.CycleTimeRemaining > 0 {
			l.CycleTimeRemaining -= dt
			if l.CycleTimeRemaining < 0 {
				l.CycleTimeRemaining = 0
			}
		}
	}
}

// fireGun resolves one gun-fire intent (§4.2). Firing is a no-op (not an
// error) while the gun's cooldown has not elapsed (I3); an out-of-range
// gun index is an invalid intent, clamped/ignored with a warning event.
func (w *World) fireGun(h Handle, ship *Ship, in GunFireIntent) {
	if in.AimSet {
		if in.Index >= 0 && in.Index < len(ship.Data.Guns) {
			ship.Data.Guns[in.Index].AimHeadingLocal = in.HeadingLocal
		}
	}
	if !in.Fire {
		return
	}
	if in.Index < 0 || in.Index >= len(ship.Data.Guns) {
		w.Events.Emit(w.TickCount, EventInvalidIntent, h, "fire_gun: index out of range")
		return
	}
	gun := &ship.Data.Guns[in.Index]
	if gun.CycleTimeRemaining > 0 {
		return // I3: cooling down, silently not fired
	}

	worldAim := NormalizeAngle(ship.Heading + gun.AimHeadingLocal)
	jitter := w.RNG.Range(-gun.Spread, gun.Spread)
	dir := Vec2{X: 1, Y: 0}.Rotate(worldAim + jitter)
	muzzle := ship.Position.Add(gun.Offset.Rotate(ship.Heading))

	bullet := Bullet{
		Team:     ship.Team,
		Position: muzzle,
		Velocity: ship.Velocity.Add(dir.Scale(gun.BulletSpeed)),
		Mass:     1,
		TTL:      4,
	}
	w.AddBullet(bullet)
	gun.CycleTimeRemaining = gun.CycleTime
}

// launchMissile resolves one launch intent (§4.2): the new ship inherits
// the launcher ship's team and velocity plus a forward boost, spawning at
// the launcher's offset rotated into world frame.
func (w *World) launchMissile(h Handle, ship *Ship, in LaunchIntent) {
	if in.Index < 0 || in.Index >= len(ship.Data.Launchers) {
		w.Events.Emit(w.TickCount, EventInvalidIntent, h, "launch_missile: index out of range")
		return
	}
	launcher := &ship.Data.Launchers[in.Index]
	if launcher.CycleTimeRemaining > 0 {
		return
	}

	spawnPos := ship.Position.Add(launcher.Offset.Rotate(ship.Heading))
	const forwardBoost = 50.0
	boost := Vec2{X: 1, Y: 0}.Rotate(ship.Heading).Scale(forwardBoost)

	missile := NewShip(launcher.PayloadClass, ship.Team, spawnPos, ship.Heading, w.RNG.Int63(), in.OrdersScalar)
	missile.Velocity = ship.Velocity.Add(boost)
	mh := w.AddShip(missile)
	w.Events.Emit(w.TickCount, EventMissileLaunched, mh, launcher.PayloadClass.String())

	launcher.CycleTimeRemaining = launcher.CycleTime
}

// explodeRadius is the area-damage pulse radius for a self-destructing
// ship (§4.2 explode()).
const explodeRadius = 200.0

// explode removes ship and applies an area damage pulse to every
// other-team ship within explodeRadius, scaled linearly with distance.
func (w *World) explode(h Handle, ship *Ship) {
	nearby := w.shipsNear(ship.Position, explodeRadius, h)
	for _, nh := range nearby {
		target := w.Ships.GetPtr(nh)
		if target == nil || target.Team == ship.Team {
			continue
		}
		dist := target.Position.Distance(ship.Position)
		if dist >= explodeRadius {
			continue
		}
		falloff := 1 - dist/explodeRadius
		target.Health -= 500 * falloff
	}
	ship.Health = 0
	w.Events.Emit(w.TickCount, EventShipDestroyed, h, "explode")
}
