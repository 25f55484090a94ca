package reference

import (
	"math"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

const (
	torpedoDetonateRange = 60.0
	torpedoMinBeamWidth  = 0.05
	torpedoMaxBeamWidth  = math.Pi / 2
	torpedoWidenRate     = 0.02 // radians added per tick of lost contact
)

// Torpedo is the reference behavior for ClassTorpedo (§4.5): as Missile
// but with larger acceleration, a wider detonation radius, a radar target
// filter that only admits Frigate/Cruiser contacts, and dead-reckoning on
// the last known target velocity when contact is lost, widening the beam
// as positional uncertainty grows.
type Torpedo struct {
	Missile
	ticksWithoutContact int
	lastTargetVelocity  kernel.Vec2
	haveLastVelocity    bool
}

func NewTorpedo(seed int64) *Torpedo { return &Torpedo{} }

// TargetFilter rejects any radar contact that is not a Frigate or Cruiser
// (§4.5). The match driver installs it on each torpedo's Radar when it
// binds the torpedo's agent, so it applies from the sweep of the tick
// after launch onward.
func TargetFilter(class kernel.ShipClass) bool {
	return class == kernel.ClassFrigate || class == kernel.ClassCruiser
}

func (t *Torpedo) Tick(ctx *agent.Context) {
	data := kernel.DefaultShipData(kernel.ClassTorpedo)

	contact, ok := ctx.Scan()
	if ok {
		t.ticksWithoutContact = 0
		t.lastTargetVelocity = contact.Velocity
		t.haveLastVelocity = true
		ctx.SetRadarWidth(torpedoMinBeamWidth)
	} else {
		t.ticksWithoutContact++
		width := torpedoMinBeamWidth + float64(t.ticksWithoutContact)*torpedoWidenRate
		if width > torpedoMaxBeamWidth {
			width = torpedoMaxBeamWidth
		}
		ctx.SetRadarWidth(width)
	}

	if !ok && t.haveLastVelocity {
		// Dead-reckon: steer toward where the last-known target should now
		// be, assuming it held its last observed velocity.
		x, y := kernel.DecodeOrders(ctx.Orders())
		target := kernel.Vec2{X: x, Y: y}
		elapsed := float64(t.ticksWithoutContact) / 60.0
		dreckoned := target.Add(t.lastTargetVelocity.Scale(elapsed))
		dp := dreckoned.Sub(ctx.Position())
		ctx.SetRadarHeading(dp.Heading() - ctx.Heading())
		TurnToHeading(ctx, dp.Heading(), data.MaxAngularAccel)
		ctx.Accelerate(kernel.Vec2{X: data.MaxForwardAccel, Y: 0})
		return
	}

	t.steer(ctx, data, torpedoDetonateRange)
}
