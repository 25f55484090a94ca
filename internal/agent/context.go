package agent

import "orbitsim/internal/kernel"

// Context is the explicit per-tick activation object bound to one ship.
// It replaces the "ambient current ship" anti-pattern flagged in §9: every
// ABI primitive is a method on this value rather than a free function
// reading implicit thread-local state. Read-only methods answer from a
// snapshot frozen at the start of the tick; write-only methods accumulate
// into an Intent applied by the kernel after every agent has run (§4.4,
// §5: same-tick intents are mutually invisible).
type Context struct {
	snap   kernel.Ship
	handle kernel.Handle
	intent kernel.Intent

	warnings []string
}

// NewContext freezes ship's current state for one tick.
func NewContext(h kernel.Handle, ship kernel.Ship) *Context {
	return &Context{snap: ship, handle: h}
}

// Tick runs an in-process agent's decision for this tick against ctx.
func (c *Context) Tick(a Agent) { a.Tick(c) }

// Intent returns the accumulated write-only calls, to be applied by the
// kernel at end of tick.
func (c *Context) Intent() kernel.Intent { return c.intent }

// Warnings returns any invalid-intent warnings recorded this tick (§7).
func (c *Context) Warnings() []string { return c.warnings }

func (c *Context) warn(msg string) { c.warnings = append(c.warnings, msg) }

// --- read-only primitives ---

func (c *Context) Class() kernel.ShipClass        { return c.snap.Data.Class }
func (c *Context) Position() kernel.Vec2          { return c.snap.Position }
func (c *Context) Velocity() kernel.Vec2          { return c.snap.Velocity }
func (c *Context) Heading() float64               { return c.snap.Heading }
func (c *Context) AngularVelocity() float64       { return c.snap.AngularVelocity }
func (c *Context) Health() float64                { return c.snap.Health }
func (c *Context) Orders() float64                { return c.snap.Orders }
func (c *Context) Seed() int64                    { return c.snap.Seed }
func (c *Context) AngleDiff(a, b float64) float64 { return kernel.AngleDiff(a, b) }

// Scan returns the radar contact captured by the *previous* tick's sweep,
// which is the most recent data available at the start of this tick (§5).
func (c *Context) Scan() (kernel.Contact, bool) {
	if !c.snap.HasContact {
		return kernel.Contact{}, false
	}
	return c.snap.LastContact, true
}

// --- write-only (intent) primitives ---

// Accelerate records a desired linear acceleration in ship-local frame;
// clamped to the class envelope when the kernel applies it (I4).
func (c *Context) Accelerate(v kernel.Vec2) {
	c.intent.Accelerate = v
	c.intent.HasAccel = true
}

// Torque records a desired angular acceleration; clamped to the class's
// angular bound on apply (I4).
func (c *Context) Torque(alpha float64) {
	c.intent.Torque = alpha
	c.intent.HasTorque = true
}

// AimGun sets gun i's local aim heading for this tick.
func (c *Context) AimGun(i int, headingLocal float64) {
	c.setGunIntent(i, func(g *kernel.GunFireIntent) {
		g.HeadingLocal = headingLocal
		g.AimSet = true
	})
}

// FireGun requests gun i fire this tick; a no-op while the gun is
// cooling down (I3), and an invalid (clamped/warned) intent for an
// out-of-range index (§7).
func (c *Context) FireGun(i int) {
	if i < 0 || i >= len(c.snap.Data.Guns) {
		c.warn("fire_gun: index out of range")
		return
	}
	c.setGunIntent(i, func(g *kernel.GunFireIntent) { g.Fire = true })
}

func (c *Context) setGunIntent(i int, mutate func(*kernel.GunFireIntent)) {
	for idx := range c.intent.Guns {
		if c.intent.Guns[idx].Index == i {
			mutate(&c.intent.Guns[idx])
			return
		}
	}
	g := kernel.GunFireIntent{Index: i}
	mutate(&g)
	c.intent.Guns = append(c.intent.Guns, g)
}

// LaunchMissile requests launcher i fire, carrying an orders scalar for
// the spawned ship.
func (c *Context) LaunchMissile(i int, ordersScalar float64) {
	if i < 0 || i >= len(c.snap.Data.Launchers) {
		c.warn("launch_missile: index out of range")
		return
	}
	c.intent.Launches = append(c.intent.Launches, kernel.LaunchIntent{Index: i, OrdersScalar: ordersScalar})
}

// SetRadarHeading sets the radar's local aim heading for this tick.
func (c *Context) SetRadarHeading(headingLocal float64) {
	c.intent.RadarHeading = headingLocal
	c.intent.HasRadarHdg = true
}

// SetRadarWidth sets the radar beam width for this tick; width <= 0 is an
// invalid intent (clamped/ignored with a warning, never fatal, §7).
func (c *Context) SetRadarWidth(width float64) {
	if width <= 0 {
		c.warn("set_radar_width: width <= 0")
		return
	}
	c.intent.RadarWidth = width
	c.intent.HasRadarWid = true
}

// Explode requests self-destruct; terminal for this ship (§6).
func (c *Context) Explode() { c.intent.Explode = true }
