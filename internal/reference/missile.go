package reference

import (
	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

const (
	missileDetonateRange      = 30.0
	missileRangeIncreaseGuard = 100.0
	badvGain                  = 10.0
)

// Missile is the reference behavior for ClassMissile (§4.5):
// proportional-navigation-like steering toward the orders-encoded target
// position, self-destructing when the predicted next-tick range closes
// inside detonateRange, or when already within the range-increase guard
// and range is growing.
type Missile struct {
	lastRange float64
	haveRange bool
}

func NewMissile(seed int64) *Missile { return &Missile{} }

func (m *Missile) Tick(ctx *agent.Context) {
	m.steer(ctx, kernel.DefaultShipData(kernel.ClassMissile), missileDetonateRange)
}

// steer is shared by Missile and Torpedo; only the ship data and
// detonation radius differ between the two classes (§4.5).
func (m *Missile) steer(ctx *agent.Context, data kernel.ShipData, detonateRange float64) {
	x, y := kernel.DecodeOrders(ctx.Orders())
	target := kernel.Vec2{X: x, Y: y}

	dp := target.Sub(ctx.Position())
	dv := ctx.Velocity().Scale(-1) // closing on a stationary encoded point by default

	if contact, ok := ctx.Scan(); ok {
		dp = contact.Position.Sub(ctx.Position())
		dv = contact.Velocity.Sub(ctx.Velocity())
	}

	rng := dp.Length()

	badv := BackoffAngularVelocity(dp, dv)
	accelDir := dp.Sub(badv.Scale(badvGain)).Normalize()

	TurnToHeading(ctx, accelDir.Heading(), data.MaxAngularAccel)
	ctx.Accelerate(kernel.Vec2{X: data.MaxForwardAccel, Y: 0})

	const dt = 1.0 / 60.0
	nextRange := dp.Add(dv.Scale(dt)).Length()
	increasing := m.haveRange && rng > m.lastRange
	if nextRange < detonateRange || (rng < missileRangeIncreaseGuard && increasing) {
		ctx.Explode()
	}

	m.lastRange = rng
	m.haveRange = true
}
