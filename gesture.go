package gesture

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for positions, deltas, and derived motion values
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds constrains the permissible drag offset. Use Unlimited for no
// constraint; zero-value Bounds pins the offset to the origin.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Unlimited returns bounds that never clamp.
func Unlimited() Bounds {
	return Bounds{
		MinX: math.Inf(-1), MaxX: math.Inf(1),
		MinY: math.Inf(-1), MaxY: math.Inf(1),
	}
}

// clamp restricts v to the bounds on each axis independently.
func (b Bounds) clamp(v Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(v.X, b.MinX), b.MaxX),
		Y: math.Min(math.Max(v.Y, b.MinY), b.MaxY),
	}
}

// Axis identifies a movement axis. AxisBoth is only meaningful in
// configuration (e.g. blocking scroll on both axes); a detected gesture axis
// is always AxisNone, AxisX, or AxisY.
type Axis uint8

const (
	AxisNone Axis = iota // no axis determined yet
	AxisX                // primarily horizontal
	AxisY                // primarily vertical
	AxisBoth             // both axes (configuration only)
)

// Device discriminates pointer input sources a gesture accepts.
type Device uint8

const (
	DevicePointer Device = iota // mouse and touch (default)
	DeviceMouse                 // mouse only
	DeviceTouch                 // touch only
)

// Key identifies a keyboard key recognized by the drag engine.
// Only the four arrow keys drive keyboard drags; everything else is ignored.
type Key uint8

const (
	KeyNone Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
)

// keyDirection maps an arrow key to its unit displacement direction.
func keyDirection(k Key) (Vec2, bool) {
	switch k {
	case KeyArrowLeft:
		return Vec2{X: -1}, true
	case KeyArrowRight:
		return Vec2{X: 1}, true
	case KeyArrowUp:
		return Vec2{Y: -1}, true
	case KeyArrowDown:
		return Vec2{Y: 1}, true
	}
	return Vec2{}, false
}

// PointerEvent is a single pointer sample delivered to the router.
// Position carries absolute coordinates; when Locked is true the platform
// reports only relative movement and Movement is authoritative instead.
type PointerEvent struct {
	ID        int           // pointer identifier: 0 = mouse, 1-9 = touch
	Device    Device        // DeviceMouse or DeviceTouch
	Position  Vec2          // absolute coordinates
	Movement  Vec2          // relative delta, valid only when Locked
	Locked    bool          // pointer lock engaged for this sample
	Buttons   int           // pressed button bitmask; bit 0 = primary
	Target    Element       // hit target (set by the source on start events)
	Timestamp time.Duration // monotonic time of the sample
}

// KeyEvent is a keyboard sample. Fast and Fine are the two speed modifiers
// scaling keyboard displacement (x10 and x0.1); Fast wins if both are held.
type KeyEvent struct {
	Key       Key
	Fast      bool
	Fine      bool
	Timestamp time.Duration
}

// ClickEvent is a synthesized click following a pointer press/release pair.
// Capturing interceptors may suppress it before it reaches click handlers.
type ClickEvent struct {
	Target    Element
	Position  Vec2
	Timestamp time.Duration
}

// Element is anything a gesture can be bound to. Frame returns the element's
// current geometry in the same coordinate space as pointer events.
type Element interface {
	Frame() Rect
}

// Surface abstracts the platform side effects a drag gesture may acquire:
// pointer capture, pointer lock, and scroll interception. All acquisitions are
// released on every gesture exit path. Implementations may be partial; a nil
// Surface disables all three.
type Surface interface {
	// SetPointerCapture routes all subsequent events for the pointer to the
	// bound target regardless of position.
	SetPointerCapture(pointerID int) error
	// ReleasePointerCapture undoes SetPointerCapture. May fail if the
	// platform already released the pointer; such failures are non-fatal.
	ReleasePointerCapture(pointerID int) error
	// RequestPointerLock switches the pointer to relative-movement reporting.
	RequestPointerLock() error
	// ExitPointerLock undoes RequestPointerLock.
	ExitPointerLock()
	// LockScroll suppresses native scrolling on the given axis (or AxisBoth).
	LockScroll(axis Axis)
	// UnlockScroll undoes LockScroll.
	UnlockScroll()
}

// Handler receives a snapshot of the gesture state after every
// state-affecting transition.
type Handler func(State)

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
