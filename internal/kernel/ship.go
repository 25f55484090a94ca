package kernel

import "math"

// ShipClass is the physical/weapon archetype of a ship.
type ShipClass int

const (
	ClassFighter ShipClass = iota
	ClassFrigate
	ClassCruiser
	ClassMissile
	ClassTorpedo
	ClassTarget
	ClassAsteroid
)

func (c ShipClass) String() string {
	switch c {
	case ClassFighter:
		return "fighter"
	case ClassFrigate:
		return "frigate"
	case ClassCruiser:
		return "cruiser"
	case ClassMissile:
		return "missile"
	case ClassTorpedo:
		return "torpedo"
	case ClassTarget:
		return "target"
	case ClassAsteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// Gun is one mounted weapon: a cycle-timed bullet emitter.
type Gun struct {
	CycleTime          float64 // seconds between shots
	CycleTimeRemaining float64
	BulletSpeed        float64
	Offset             Vec2    // muzzle offset, ship-local frame
	Spread             float64 // radians of deterministic aim jitter
	AimHeadingLocal    float64 // agent-settable, ship-local frame
}

// Launcher is a missile/torpedo tube.
type Launcher struct {
	CycleTime          float64
	CycleTimeRemaining float64
	PayloadClass       ShipClass
	Offset             Vec2
}

// Radar is the optional detection component.
type Radar struct {
	Present       bool
	HeadingLocal  float64 // agent-settable
	Width         float64 // radians, (0, 2*pi]
	CrossSection  float64
	TargetFilter  func(ShipClass) bool // torpedo-style class filter (§9 open question)
}

// ShipData holds the per-class physical/weapon envelope (I2, I4).
type ShipData struct {
	Class ShipClass

	InitialHealth float64

	MaxForwardAccel  float64
	MaxBackwardAccel float64
	MaxLateralAccel  float64
	MaxAngularAccel  float64

	RadarCrossSection float64

	Guns      []Gun
	Launchers []Launcher

	TTL float64 // seconds; 0 means no TTL (missiles/torpedoes only)
}

// Ship is one simulated entity: position/velocity/heading state plus its
// class envelope and mounted weapons.
type Ship struct {
	Handle Handle
	Team   int32
	Data   ShipData

	Position        Vec2
	Velocity        Vec2
	Heading         float64
	AngularVelocity float64
	Health          float64

	Radar Radar

	TTLRemaining float64 // only meaningful when Data.TTL > 0

	// Orders is the single scalar handed to the guest agent at construction
	// (§6 Orders encoding).
	Orders float64
	Seed   int64

	// ControllerTarget is scratch the scenario may write and the agent may
	// read (ShipController in the data model).
	ControllerTarget Vec2
	HasControllerTgt bool

	Faulted bool // agent runtime fault recorded; ship behaves inert until GC'd

	// LastContact is the radar contact captured by this tick's sweep, read
	// by the agent via scan() at the start of next tick (§5 ordering: a
	// tick's sweep uses post-integration positions; the result is visible
	// to the agent one tick later, since a tick's agents only ever see the
	// frozen snapshot from the end of the previous tick).
	LastContact   Contact
	HasContact    bool
}

// DefaultShipData returns the frozen per-class envelope table. Class
// ordering and relative scaling (fighter < frigate < cruiser; missile and
// torpedo fast and fragile; asteroid/target inert) follows oort3's
// scenario roster; exact constants are authored for this table rather
// than copied from the original numerically.
func DefaultShipData(class ShipClass) ShipData {
	switch class {
	case ClassFighter:
		return ShipData{
			Class:             ClassFighter,
			InitialHealth:     100,
			MaxForwardAccel:   60,
			MaxBackwardAccel:  30,
			MaxLateralAccel:   30,
			MaxAngularAccel:   4 * math.Pi,
			RadarCrossSection: 5,
			Guns: []Gun{
				{CycleTime: 0.2, BulletSpeed: 1000, Offset: Vec2{X: 15, Y: 0}, Spread: 0.01},
			},
			Launchers: []Launcher{
				{CycleTime: 5, PayloadClass: ClassMissile, Offset: Vec2{X: 10, Y: 0}},
			},
		}
	case ClassFrigate:
		return ShipData{
			Class:             ClassFrigate,
			InitialHealth:     400,
			MaxForwardAccel:   30,
			MaxBackwardAccel:  15,
			MaxLateralAccel:   15,
			MaxAngularAccel:   math.Pi / 3, // TAU/6 (TAU = 2*pi)
			RadarCrossSection: 20,
			Guns: []Gun{
				{CycleTime: 0.4, BulletSpeed: 1200, Offset: Vec2{X: 20, Y: 0}, Spread: 0.005},
				{CycleTime: 0.4, BulletSpeed: 1200, Offset: Vec2{X: 18, Y: 8}, Spread: 0.005},
				{CycleTime: 0.4, BulletSpeed: 1200, Offset: Vec2{X: 18, Y: -8}, Spread: 0.005},
			},
			Launchers: []Launcher{
				{CycleTime: 8, PayloadClass: ClassMissile, Offset: Vec2{X: 15, Y: 0}},
			},
		}
	case ClassCruiser:
		return ShipData{
			Class:             ClassCruiser,
			InitialHealth:     10000,
			MaxForwardAccel:   10,
			MaxBackwardAccel:  5,
			MaxLateralAccel:   5,
			MaxAngularAccel:   math.Pi / 8, // TAU/16
			RadarCrossSection: 100,
			Guns: []Gun{
				{CycleTime: 0.6, BulletSpeed: 1500, Offset: Vec2{X: 40, Y: 0}, Spread: 0.002},
			},
			Launchers: []Launcher{
				{CycleTime: 3, PayloadClass: ClassTorpedo, Offset: Vec2{X: 30, Y: 10}},
				{CycleTime: 3, PayloadClass: ClassTorpedo, Offset: Vec2{X: 30, Y: -10}},
			},
		}
	case ClassMissile:
		return ShipData{
			Class:             ClassMissile,
			InitialHealth:     1,
			MaxForwardAccel:   400,
			MaxBackwardAccel:  100,
			MaxLateralAccel:   400,
			MaxAngularAccel:   8 * math.Pi,
			RadarCrossSection: 2,
			TTL:               30,
		}
	case ClassTorpedo:
		return ShipData{
			Class:             ClassTorpedo,
			InitialHealth:     10,
			MaxForwardAccel:   1000,
			MaxBackwardAccel:  200,
			MaxLateralAccel:   1000,
			MaxAngularAccel:   8 * math.Pi,
			RadarCrossSection: 8,
			TTL:               30,
		}
	case ClassTarget:
		return ShipData{
			Class:             ClassTarget,
			InitialHealth:     100,
			RadarCrossSection: 10,
		}
	case ClassAsteroid:
		return ShipData{
			Class:             ClassAsteroid,
			InitialHealth:     10000,
			RadarCrossSection: 40,
		}
	default:
		return ShipData{Class: class, InitialHealth: 1}
	}
}

// NewShip constructs a ship of class at position with the given team, seed
// and orders scalar, using the frozen default envelope for class.
func NewShip(class ShipClass, team int32, pos Vec2, heading float64, seed int64, orders float64) *Ship {
	data := DefaultShipData(class)
	s := &Ship{
		Team:         team,
		Data:         data,
		Position:     pos,
		Heading:      heading,
		Health:       data.InitialHealth,
		Seed:         seed,
		Orders:       orders,
		TTLRemaining: data.TTL,
	}
	if data.RadarCrossSection > 0 && class != ClassAsteroid {
		s.Radar = Radar{Present: true, Width: 2 * math.Pi, CrossSection: data.RadarCrossSection}
	}
	return s
}

// Alive reports whether the ship still has health.
func (s *Ship) Alive() bool { return s.Health > 0 }
