package spiral

import "github.com/OpenTraceLab/magnetorquer/pkg/geometry"

// ring is one concentric set of vias with the touch points that lead into
// them. Points are relative to the spiral center and not yet projected.
type ring struct {
	vias    []geometry.Point
	touches []geometry.Point
}

// leg is the four anchor points one layer is routed through.
type leg struct {
	departVia   geometry.Point
	departTouch geometry.Point
	arriveTouch geometry.Point
	arriveVia   geometry.Point
}

// ringRouter tracks which ring each layer departs from and arrives at.
// Even layers run outer to inner, odd layers inner to outer. After each layer
// the arrival via becomes the next departure via and the next arrival moves
// one step further around the ring, so consecutive layers meet on a shared
// via and the coil zig-zags through the board.
type ringRouter struct {
	outer, inner ring
	layer        int
	departIdx    int
	arriveIdx    int
}

func newRingRouter(outer, inner ring) *ringRouter {
	return &ringRouter{outer: outer, inner: inner}
}

// departure returns the ring the current layer starts on.
func (rr *ringRouter) departure() *ring {
	if rr.layer%2 == 0 {
		return &rr.outer
	}
	return &rr.inner
}

// arrival returns the ring the current layer ends on.
func (rr *ringRouter) arrival() *ring {
	if rr.layer%2 == 0 {
		return &rr.inner
	}
	return &rr.outer
}

// leg returns the anchors for the current layer.
func (rr *ringRouter) leg() leg {
	dep, arr := rr.departure(), rr.arrival()
	parity := rr.layer % 2
	return leg{
		departVia:   dep.vias[rr.departIdx],
		departTouch: dep.touches[mod(rr.departIdx+parity, len(dep.touches))],
		arriveTouch: arr.touches[mod(rr.arriveIdx-1+parity, len(arr.touches))],
		arriveVia:   arr.vias[rr.arriveIdx],
	}
}

// advance moves to the next layer.
func (rr *ringRouter) advance() {
	rr.departIdx, rr.arriveIdx = rr.arriveIdx, rr.departIdx+1
	rr.layer++
}

// mod is the non-negative remainder of a / n.
func mod(a, n int) int {
	return ((a % n) + n) % n
}
