package kernel

import "math"

// Orders scalar encoding (§6): a single float64 scalar carries a 2D
// waypoint hint handed to a newly spawned agent. The formula and the o==0
// special case are taken as-is from the oort3 reference (ai/src/user.rs
// make_orders/parse_orders), including its property that o==0 is reserved to
// mean "no orders" / the origin, rather than falling out of the general
// formula (encode(0,0) is itself nonzero, per P2).
const (
	OrdersScale = 1e6
	OrdersBias  = OrdersScale / 2.0
)

// EncodeOrders packs an integer (x, y) waypoint into the orders scalar.
func EncodeOrders(x, y int64) float64 {
	return (float64(x) + OrdersBias) + (float64(y)+OrdersBias)*OrdersScale
}

// DecodeOrders unpacks the orders scalar back into (x, y). o == 0 is the
// reserved "no orders" value and decodes to the origin.
func DecodeOrders(o float64) (float64, float64) {
	if o == 0 {
		return 0, 0
	}
	x := math.Mod(o, OrdersScale) - OrdersBias
	y := math.Floor(o/OrdersScale) - OrdersBias
	return x, y
}
