package gesture

import "time"

// State is the kinematic description of one drag gesture. A snapshot is
// handed to the bound Handler after every state-affecting transition; the
// engine retains exclusive ownership of the live copy.
type State struct {
	// Active reports whether the gesture is live. It is always the logical
	// OR of PointerActive and KeyboardActive and is never set directly.
	Active bool

	// PointerActive and KeyboardActive track the two input sources
	// independently; either can sustain the gesture on its own.
	PointerActive  bool
	KeyboardActive bool

	// PointerID identifies the single pointer driving the gesture
	// (0 = mouse, 1-9 = touch). -1 when no pointer is captured. Events from
	// other pointer ids are ignored until this one is released.
	PointerID int

	// Delayed is true while a configured activation delay keeps a pressed
	// pointer from starting the drag.
	Delayed bool

	// PreventingScroll is true once the gesture has claimed the pointer away
	// from native scrolling.
	PreventingScroll bool

	// Canceled is terminal: the gesture reports inactive and further
	// kinematic updates are frozen until the next gesture begins.
	Canceled bool

	// Values is the last raw absolute pointer reading; Initial is its value
	// at gesture start.
	Values  Vec2
	Initial Vec2

	// Delta is the latest incremental movement since the previous sample.
	Delta Vec2

	// Movement is the accumulated offset since gesture start, pre-clamp.
	Movement Vec2

	// Offset is Movement applied to the gesture's starting offset and
	// clamped against Bounds. It persists across gestures so a new drag
	// continues where the previous one ended.
	Offset Vec2

	// Distance is the per-axis total travel (sum of |Delta|), non-negative.
	Distance Vec2

	// Direction holds the sign of the last non-zero Delta per axis. It is
	// retained when the delta is zero so terminal classification can read it.
	Direction Vec2

	// Velocity is the per-axis speed of the last sample in units per
	// millisecond, signed.
	Velocity Vec2

	// Axis is the locked dominant axis, determined once from accumulated
	// movement and then kept for the rest of the gesture.
	Axis Axis

	// Swipe is set once at gesture end: -1, 0, or 1 per axis.
	Swipe Vec2

	// Tap is set once at gesture end when total per-axis travel stayed
	// within the tap distance.
	Tap bool

	// Bounds is the movement constraint resolved at gesture setup.
	Bounds Bounds

	// StartTime is the timestamp of the initiating event; ElapsedTime is the
	// time since then as of the last processed event.
	StartTime   time.Duration
	ElapsedTime time.Duration

	// from is the offset origin of the current gesture (Offset at setup, or
	// the configured From). Unexported: consumers read Offset.
	from Vec2
}

// reset clears per-gesture fields ahead of a fresh activation while keeping
// Offset so consecutive drags compose.
func (s *State) reset() {
	offset := s.Offset
	*s = State{
		PointerID: -1,
		Offset:    offset,
		Bounds:    Unlimited(),
	}
}
