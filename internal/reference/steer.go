// Package reference implements the trusted, in-process reference agents
// for every ship class (§4.5). These are the built-in opponents/allies
// used by the scenario catalog and are never sandboxed — they run
// straight against an agent.Context, same as a guest's ABI calls would,
// just without the wire hop.
package reference

import (
	"math"

	"orbitsim/internal/agent"
	"orbitsim/internal/kernel"
)

// TurnToHeading applies bang-bang-with-braking torque to steer toward
// target, given the current heading/angular velocity and the class's
// angular acceleration bound (§4.5's literal turn-control formula).
func TurnToHeading(ctx *agent.Context, target float64, maxAngularAccel float64) {
	dh := ctx.AngleDiff(ctx.Heading(), target)
	vh := ctx.AngularVelocity()
	alpha := maxAngularAccel

	t := math.Abs(vh) / alpha
	pdh := vh*t - 0.5*alpha*t*t - dh

	if pdh < 0 {
		ctx.Torque(alpha)
	} else {
		ctx.Torque(-alpha)
	}
}

// LeadTarget iterates the fixed-point lead-prediction formula three times
// (§4.5: converges for dp·dv > -0.9 · |dp|·|dv|): predictedDp ← dp + dv ·
// |predictedDp| / bulletSpeed.
func LeadTarget(dp, dv kernel.Vec2, bulletSpeed float64) kernel.Vec2 {
	predicted := dp
	for i := 0; i < 3; i++ {
		predicted = dp.Add(dv.Scale(predicted.Length() / bulletSpeed))
	}
	return predicted
}

// BackoffAngularVelocity is the proportional-navigation lateral residual
// used by Missile/Torpedo steering (§4.5): badv = -(dv - (dv·dp̂)·dp̂).
func BackoffAngularVelocity(dp, dv kernel.Vec2) kernel.Vec2 {
	dpHat := dp.Normalize()
	closing := dpHat.Scale(dv.Dot(dpHat))
	return dv.Sub(closing).Scale(-1)
}
