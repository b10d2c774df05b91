package game

import "math"

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a host pointer event in playfield pixels, origin top-left.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// InputQueue buffers pointer events between ticks. Events are only applied at
// the start of a tick, never in the middle of one.
type InputQueue struct {
	events []PointerEvent
}

// Push appends an event.
func (q *InputQueue) Push(kind PointerKind, x, y float64) {
	q.events = append(q.events, PointerEvent{Kind: kind, X: x, Y: y})
}

// Down, Move and Up are shorthands for Push.
func (q *InputQueue) Down(x, y float64) { q.Push(PointerDown, x, y) }
func (q *InputQueue) Move(x, y float64) { q.Push(PointerMove, x, y) }
func (q *InputQueue) Up(x, y float64)   { q.Push(PointerUp, x, y) }

// Len returns the number of buffered events.
func (q *InputQueue) Len() int { return len(q.events) }

// Drain returns the buffered events in arrival order and empties the queue.
func (q *InputQueue) Drain() []PointerEvent {
	out := q.events
	q.events = nil
	return out
}

// Sanitize clamps a host coordinate pair into [0,w]×[0,h]. NaN maps to 0 so a
// bad event can never poison physics state.
func Sanitize(x, y, w, h float64) Point {
	return Point{X: clampCoord(x, w), Y: clampCoord(y, h)}
}

func clampCoord(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
