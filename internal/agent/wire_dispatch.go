package agent

import "orbitsim/internal/kernel"

// dispatchCall applies one wire Call to ctx and reports the Result the
// guest expects back, mirroring the §6 ABI primitive names 1:1.
func dispatchCall(ctx *Context, call Call) Result {
	switch call.Method {
	case "class":
		return Result{OK: true, Ints: []int{int(ctx.Class())}}
	case "position":
		p := ctx.Position()
		return Result{OK: true, Floats: []float64{p.X, p.Y}}
	case "velocity":
		v := ctx.Velocity()
		return Result{OK: true, Floats: []float64{v.X, v.Y}}
	case "heading":
		return Result{OK: true, Floats: []float64{ctx.Heading()}}
	case "angular_velocity":
		return Result{OK: true, Floats: []float64{ctx.AngularVelocity()}}
	case "health":
		return Result{OK: true, Floats: []float64{ctx.Health()}}
	case "orders":
		return Result{OK: true, Floats: []float64{ctx.Orders()}}
	case "seed":
		return Result{OK: true, Ints: []int{int(ctx.Seed())}}
	case "angle_diff":
		if len(call.Args) != 2 {
			return Result{OK: false, Warning: "angle_diff: expected 2 args"}
		}
		return Result{OK: true, Floats: []float64{ctx.AngleDiff(call.Args[0], call.Args[1])}}
	case "scan":
		contact, ok := ctx.Scan()
		if !ok {
			return Result{OK: true, HasContact: false}
		}
		return Result{OK: true, HasContact: true, Contact: ContactWire{
			Position: [2]float64{contact.Position.X, contact.Position.Y},
			Velocity: [2]float64{contact.Velocity.X, contact.Velocity.Y},
			Class:    int(contact.Class),
		}}

	case "accelerate":
		if len(call.Args) != 2 {
			return Result{OK: false, Warning: "accelerate: expected 2 args"}
		}
		ctx.Accelerate(kernel.Vec2{X: call.Args[0], Y: call.Args[1]})
		return Result{OK: true}
	case "torque":
		if len(call.Args) != 1 {
			return Result{OK: false, Warning: "torque: expected 1 arg"}
		}
		ctx.Torque(call.Args[0])
		return Result{OK: true}
	case "aim_gun":
		if len(call.IntArgs) != 1 || len(call.Args) != 1 {
			return Result{OK: false, Warning: "aim_gun: expected 1 int arg, 1 float arg"}
		}
		ctx.AimGun(call.IntArgs[0], call.Args[0])
		return Result{OK: true}
	case "fire_gun":
		if len(call.IntArgs) != 1 {
			return Result{OK: false, Warning: "fire_gun: expected 1 int arg"}
		}
		ctx.FireGun(call.IntArgs[0])
		return Result{OK: true}
	case "launch_missile":
		if len(call.IntArgs) != 1 || len(call.Args) != 1 {
			return Result{OK: false, Warning: "launch_missile: expected 1 int arg, 1 float arg"}
		}
		ctx.LaunchMissile(call.IntArgs[0], call.Args[0])
		return Result{OK: true}
	case "set_radar_heading":
		if len(call.Args) != 1 {
			return Result{OK: false, Warning: "set_radar_heading: expected 1 arg"}
		}
		ctx.SetRadarHeading(call.Args[0])
		return Result{OK: true}
	case "set_radar_width":
		if len(call.Args) != 1 {
			return Result{OK: false, Warning: "set_radar_width: expected 1 arg"}
		}
		ctx.SetRadarWidth(call.Args[0])
		return Result{OK: true}
	case "explode":
		ctx.Explode()
		return Result{OK: true}

	default:
		return Result{OK: false, Warning: "unknown method: " + call.Method}
	}
}
