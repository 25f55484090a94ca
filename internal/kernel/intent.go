package kernel

// GunFireIntent and LaunchIntent record one weapon action requested this
// tick, resolved during the weapons phase after all agents have run.
type GunFireIntent struct {
	Index        int
	HeadingLocal float64
	AimSet       bool
	Fire         bool
}

type LaunchIntent struct {
	Index        int
	OrdersScalar float64
}

// Intent accumulates everything a ship's agent requested during one tick.
// It is write-only from the agent's perspective and is drained/cleared by
// the physics and weapons phases at end of tick (§4.4, §5).
type Intent struct {
	Accelerate   Vec2 // ship-local frame, clamped to class envelope on apply
	HasAccel     bool
	Torque       float64
	HasTorque    bool
	RadarHeading float64
	HasRadarHdg  bool
	RadarWidth   float64
	HasRadarWid  bool
	Guns         []GunFireIntent
	Launches     []LaunchIntent
	Explode      bool
}

// Reset clears the intent for reuse on the next tick.
func (in *Intent) Reset() {
	*in = Intent{}
}

// ClampAccel restricts a ship-local acceleration request to the class's
// componentwise forward/backward/lateral envelope (I4). X is the ship's
// forward axis.
func ClampAccel(local Vec2, data ShipData) Vec2 {
	x := local.X
	if x >= 0 {
		x = Clamp(x, 0, data.MaxForwardAccel)
	} else {
		x = Clamp(x, -data.MaxBackwardAccel, 0)
	}
	y := Clamp(local.Y, -data.MaxLateralAccel, data.MaxLateralAccel)
	return Vec2{X: x, Y: y}
}

// ClampTorque restricts an angular acceleration request to the class's
// angular bound (I4).
func ClampTorque(torque float64, data ShipData) float64 {
	return Clamp(torque, -data.MaxAngularAccel, data.MaxAngularAccel)
}
