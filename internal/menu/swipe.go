package menu

// SwipeThreshold is the horizontal displacement, in distance units, a drag
// must exceed to count as a decisive swipe.
const SwipeThreshold = 100

// Decision is the outcome of interpreting a drag gesture.
type Decision int

const (
	// Inconclusive means the gesture was too short or too vertical; the
	// card snaps back and the cursor does not move.
	Inconclusive Decision = iota
	// Accepted means a right swipe: the dish joins the selection.
	Accepted
	// Rejected means a left swipe: the cursor advances, nothing recorded.
	Rejected
)

// ResolveSwipe interprets a drag displacement. The drag is decisive when
// its horizontal magnitude exceeds SwipeThreshold and dominates the
// vertical magnitude.
func ResolveSwipe(dx, dy float64) Decision {
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx <= SwipeThreshold || adx <= ady {
		return Inconclusive
	}
	if dx > 0 {
		return Accepted
	}
	return Rejected
}
