package reference

import (
	"math"
	"math/rand"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

const (
	fighterWaypointMinRadius = 3500.0
	fighterWaypointMaxRadius = 4500.0
	fighterEngageRange       = 5000.0
	fighterNarrowBeamWidth   = 0.2
	fighterSweepBeamWidth    = 2 * math.Pi
)

// Fighter is the reference behavior for ClassFighter (§4.5): wander an
// annulus sweeping radar randomly absent a contact, track and lead the
// target on contact, fire when the predicted range closes, and launch a
// missile carrying the target's encoded position.
type Fighter struct {
	rng      *rand.Rand
	waypoint kernel.Vec2
	haveWpt  bool
}

// NewFighter seeds the agent's own decision RNG from the ship's seed, kept
// separate from the world RNG so agent "thinking" never perturbs physics
// determinism.
func NewFighter(seed int64) *Fighter {
	return &Fighter{rng: rand.New(rand.NewSource(seed))}
}

func (f *Fighter) Tick(ctx *agent.Context) {
	data := kernel.DefaultShipData(kernel.ClassFighter)

	contact, ok := ctx.Scan()
	if !ok {
		f.wander(ctx)
		return
	}

	dp := contact.Position.Sub(ctx.Position())
	dv := contact.Velocity.Sub(ctx.Velocity())

	TurnToHeading(ctx, dp.Heading(), data.MaxAngularAccel)
	ctx.Accelerate(kernel.Vec2{X: data.MaxForwardAccel, Y: 0})
	ctx.SetRadarHeading(dp.Heading())
	ctx.SetRadarWidth(fighterNarrowBeamWidth)

	predicted := LeadTarget(dp, dv, data.Guns[0].BulletSpeed)
	if predicted.Length() < fighterEngageRange {
		ctx.AimGun(0, predicted.Heading()-ctx.Heading())
		ctx.FireGun(0)
	}

	if len(data.Launchers) > 0 {
		ctx.LaunchMissile(0, kernel.EncodeOrders(int64(contact.Position.X), int64(contact.Position.Y)))
	}
}

func (f *Fighter) wander(ctx *agent.Context) {
	data := kernel.DefaultShipData(kernel.ClassFighter)

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
