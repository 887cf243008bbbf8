package gesture

import "time"

// Default thresholds. Velocities are in units per millisecond, distances in
// the coordinate units of the input source.
const (
	defaultSwipeVelocity        = 0.5
	defaultSwipeDistance        = 50.0
	defaultSwipeDuration        = 250 * time.Millisecond
	defaultPreventScrollDelay   = 250 * time.Millisecond
	defaultKeyboardDisplacement = 10.0

	// tapDistance is the maximum per-axis travel for a press/release pair to
	// classify as a tap.
	tapDistance = 3.0
)

// SwipeConfig holds the terminal swipe classification thresholds.
// Zero values select the defaults (velocity 0.5 units/ms, distance 50 units,
// duration 250ms).
type SwipeConfig struct {
	Velocity Vec2          // per-axis minimum |velocity|, units/ms
	Distance Vec2          // per-axis minimum |movement|, units
	Duration time.Duration // maximum gesture duration for a swipe
}

// DragConfig configures a drag gesture binding. The zero value is usable:
// both pointer devices, pointer capture on, no delay, no scroll prevention,
// unlimited bounds.
type DragConfig struct {
	// Device restricts which pointer sources may start the gesture.
	Device Device

	// DisablePointerCapture turns off pointer capture. Without capture the
	// move/up handlers are registered on the shared scope only once the
	// gesture starts.
	DisablePointerCapture bool

	// PointerLock requests relative-movement reporting for the duration of
	// the gesture.
	PointerLock bool

	// PreventScroll defers activation until the gesture proves it is not a
	// native scroll: movement along PreventScrollAxis aborts the drag,
	// movement along the other axis (or PreventScrollDelay elapsing) starts
	// it with scrolling suppressed.
	PreventScroll      bool
	PreventScrollAxis  Axis          // AxisX, AxisY (default), or AxisBoth
	PreventScrollDelay time.Duration // 0 selects the 250ms default

	// Delay postpones activation after pointer down; any movement before it
	// elapses activates immediately.
	Delay time.Duration

	// FilterTaps suppresses the click that follows a real drag and forces
	// emission of the terminal tap frame.
	FilterTaps bool

	Swipe SwipeConfig

	// Bounds sets explicit offset limits. BoundsElement instead derives them
	// at every gesture start from the container's and the target's current
	// frames. Bounds wins when both are set.
	Bounds        *Bounds
	BoundsElement Element

	// From fixes the gesture's starting offset. When nil the gesture
	// continues from the offset the previous one ended at.
	From *Vec2

	// KeyboardDisplacement is the base per-keypress movement in units.
	// 0 selects the default of 10.
	KeyboardDisplacement float64

	// HitShape narrows the target's interactive region for hit testing.
	HitShape HitShape

	// Surface provides the platform side effects (capture, lock, scroll
	// interception). Nil disables all three.
	Surface Surface
}

// dragConfig is the fully resolved, validated option set the engine reads.
type dragConfig struct {
	device               Device
	pointerCapture       bool
	pointerLock          bool
	preventScroll        bool
	preventScrollAxis    Axis
	preventScrollDelay   time.Duration
	delay                time.Duration
	filterTaps           bool
	swipeVelocity        Vec2
	swipeDistance        Vec2
	swipeDuration        time.Duration
	bounds               *Bounds
	boundsElement        Element
	from                 *Vec2
	keyboardDisplacement float64
	hitShape             HitShape
	surface              Surface
}

// resolveDragConfig normalizes user options into a fully populated
// configuration: defaults filled in, negative durations clamped to zero.
func resolveDragConfig(cfg DragConfig) dragConfig {
	rc := dragConfig{
		device:               cfg.Device,
		pointerCapture:       !cfg.DisablePointerCapture,
		pointerLock:          cfg.PointerLock,
		preventScroll:        cfg.PreventScroll,
		preventScrollAxis:    cfg.PreventScrollAxis,
		preventScrollDelay:   cfg.PreventScrollDelay,
		delay:                cfg.Delay,
		filterTaps:           cfg.FilterTaps,
		swipeVelocity:        cfg.Swipe.Velocity,
		swipeDistance:        cfg.Swipe.Distance,
		swipeDuration:        cfg.Swipe.Duration,
		bounds:               cfg.Bounds,
		boundsElement:        cfg.BoundsElement,
		from:                 cfg.From,
		keyboardDisplacement: cfg.KeyboardDisplacement,
		hitShape:             cfg.HitShape,
		surface:              cfg.Surface,
	}

	if rc.preventScrollAxis == AxisNone {
		rc.preventScrollAxis = AxisY
	}
	if rc.preventScrollDelay <= 0 {
		rc.preventScrollDelay = defaultPreventScrollDelay
	}
	if rc.delay < 0 {
		rc.delay = 0
	}
	if rc.swipeVelocity.X <= 0 {
		rc.swipeVelocity.X = defaultSwipeVelocity
	}
	if rc.swipeVelocity.Y <= 0 {
		rc.swipeVelocity.Y = defaultSwipeVelocity
	}
	if rc.swipeDistance.X <= 0 {
		rc.swipeDistance.X = defaultSwipeDistance
	}
	if rc.swipeDistance.Y <= 0 {
		rc.swipeDistance.Y = defaultSwipeDistance
	}
	if rc.swipeDuration <= 0 {
		rc.swipeDuration = defaultSwipeDuration
	}
	if rc.keyboardDisplacement <= 0 {
		rc.keyboardDisplacement = defaultKeyboardDisplacement
	}
	// Pointer lock reports relative deltas to the locked target; capture is
	// redundant under it.
	if rc.pointerLock {
		rc.pointerCapture = false
	}
	return rc
}

// acceptsDevice reports whether the configured device filter admits d.
func (c *dragConfig) acceptsDevice(d Device) bool {
	return c.device == DevicePointer || c.device == d
}

// resolveBounds produces the canonical movement constraint for one gesture.
// Explicit limits win; otherwise the permissible rectangle is derived from
// the bounding element's and the target's current frames, offset by the
// gesture's starting offset.
func (c *dragConfig) resolveBounds(target Element, origin Vec2) Bounds {
	if c.bounds != nil {
		return *c.bounds
	}
	if c.boundsElement == nil || target == nil {
		return Unlimited()
	}
	cb := c.boundsElement.Frame()
	tb := target.Frame()
	return Bounds{
		MinX: cb.X - tb.X + origin.X,
		MaxX: (cb.X + cb.Width) - (tb.X + tb.Width) + origin.X,
		MinY: cb.Y - tb.Y + origin.Y,
		MaxY: (cb.Y + cb.Height) - (tb.Y + tb.Height) + origin.Y,
	}
}
