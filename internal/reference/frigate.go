package reference

import (
	"math"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

// Frigate is the reference behavior for ClassFrigate (§4.5): as Fighter,
// but three guns with two offset muzzles whose aim corrects for the
// muzzle's own position rotated into world frame, and the class's slower
// angular limit (TAU/6).
type Frigate struct {
	*Fighter
}

func NewFrigate(seed int64) *Frigate {
	return &Frigate{Fighter: NewFighter(seed)}
}

func (f *Frigate) Tick(ctx *agent.Context) {
	data := kernel.DefaultShipData(kernel.ClassFrigate)

	contact, ok := ctx.Scan()
	if !ok {
		f.wanderAs(ctx, data)
		return
	}

	dp := contact.Position.Sub(ctx.Position())
	dv := contact.Velocity.Sub(ctx.Velocity())

	TurnToHeading(ctx, dp.Heading(), data.MaxAngularAccel)
	ctx.Accelerate(kernel.Vec2{X: data.MaxForwardAccel, Y: 0})
	ctx.SetRadarHeading(dp.Heading())
	ctx.SetRadarWidth(fighterNarrowBeamWidth)

	heading := ctx.Heading()
	for i, gun := range data.Guns {
		// Correct aim for the muzzle's own offset rotated into world frame:
		// the gun fires from Offset away from the hull center, so the true
		// target-relative vector differs from dp by that rotated offset.
		muzzleWorld := gun.Offset.Rotate(heading)
		dpFromMuzzle := dp.Sub(muzzleWorld)
		predicted := LeadTarget(dpFromMuzzle, dv, gun.BulletSpeed)
		if predicted.Length() < fighterEngageRange {
			ctx.AimGun(i, predicted.Heading()-heading)
			ctx.FireGun(i)
		}
	}

	if len(data.Launchers) > 0 {
		ctx.LaunchMissile(0, kernel.EncodeOrders(int64(contact.Position.X), int64(contact.Position.Y)))
	}
}

func (f *Frigate) wanderAs(ctx *agent.Context, data kernel.ShipData) {
	if !f.haveWpt || ctx.Position().Distance(f.waypoint) < 100 {
		radius := fighterWaypointMinRadius + f.rng.Float64()*(fighterWaypointMaxRadius-fighterWaypointMinRadius)
		angle := f.rng.Float64() * 2 * math.Pi
		f.waypoint = kernel.Vec2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		f.haveWpt = true
	}

	toWaypoint := f.waypoint.Sub(ctx.Position())
	TurnToHeading(ctx, toWaypoint.Heading(), data.MaxAngularAccel)
	ctx.Accelerate(kernel.Vec2{X: data.MaxForwardAccel, Y: 0})
	ctx.SetRadarHeading(f.rng.Float64() * 2 * math.Pi)
	ctx.SetRadarWidth(fighterSweepBeamWidth)
}
