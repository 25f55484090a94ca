package reference

import (
	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

const cruiserFullSweepPeriod = 6

// Cruiser is the reference behavior for ClassCruiser (§4.5): as Frigate,
// but cycles its radar between a full sweep (every 6th tick) and narrow
// tracking, and has the slowest angular limit of any class (TAU/16).
type Cruiser struct {
	*Frigate
	tickCount int
}

func NewCruiser(seed int64) *Cruiser {
	return &Cruiser{Frigate: NewFrigate(seed)}
}

func (c *Cruiser) Tick(ctx *agent.Context) {
	data := kernel.DefaultShipData(kernel.ClassCruiser)
	c.tickCount++

	contact, ok := ctx.Scan()
	if !ok {
		c.wanderAs(ctx, data)
		c.tickCount = 0
		return
	}

	dp := contact.Position.Sub(ctx.Position())
	dv := contact.Velocity.Sub(ctx.Velocity())

	TurnToHeading(ctx, dp.Heading(), data.MaxAngularAccel)
	ctx.Accelerate(kernel.Vec2{X: data.MaxForwardAccel, Y: 0})

	if c.tickCount%cruiserFullSweepPeriod == 0 {
		ctx.SetRadarHeading(0)
		ctx.SetRadarWidth(fighterSweepBeamWidth)
	} else {
		ctx.SetRadarHeading(dp.Heading())
		ctx.SetRadarWidth(fighterNarrowBeamWidth)
	}

	heading := ctx.Heading()
	for i, gun := range data.Guns {
		muzzleWorld := gun.Offset.Rotate(heading)
		dpFromMuzzle := dp.Sub(muzzleWorld)
		predicted := LeadTarget(dpFromMuzzle, dv, gun.BulletSpeed)
		if predicted.Length() < fighterEngageRange {
			ctx.AimGun(i, predicted.Heading()-heading)
			ctx.FireGun(i)
		}
	}

	for i := range data.Launchers {
		ctx.LaunchMissile(i, kernel.EncodeOrders(int64(contact.Position.X), int64(contact.Position.Y)))
	}
}
