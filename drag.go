package gesture

import "time"

// Timer keys. A transition that supersedes a timer's purpose cancels it by
// name before proceeding.
const (
	timerDelay         = "dragDelay"
	timerPreventScroll = "startPreventScroll"
	timerCancel        = "cancel"
)

// Drag recognizes a single drag gesture on one target, merging pointer and
// keyboard input into one state machine. Create it with Router.BindDrag and
// release it with Unbind.
type Drag struct {
	router  *Router
	target  Element
	handler Handler
	cfg     dragConfig
	state   State

	// Registered handles: static ones live for the binding's lifetime,
	// dynamic ones only while an uncaptured pointer gesture is running.
	handles    []CallbackHandle
	dynHandles []CallbackHandle

	// Platform acquisitions, released on every exit path.
	captured     bool
	locked       bool
	scrollLocked bool

	// Activation pipeline.
	scrollPending bool
	pendingEvent  PointerEvent // event captured at delay/scroll scheduling time

	// Duplicate-sample suppression: device kind and timestamp of the last
	// processed move.
	lastMoveDevice Device
	lastMoveTime   time.Duration
	lastMoveValid  bool

	// Timestamp of the previous kinematics input, for velocity dt.
	lastTime time.Duration

	// Emission suppression bookkeeping.
	lastActive   bool
	lastCanceled bool
}

// BindDrag wires a drag gesture recognizer to target and returns it. The
// handler receives a state snapshot after every state-affecting transition.
func (r *Router) BindDrag(target Element, handler Handler, cfg DragConfig) *Drag {
	d := &Drag{
		router:  r,
		target:  target,
		handler: handler,
		cfg:     resolveDragConfig(cfg),
	}
	d.state.reset()
	d.bind()
	return d
}

// bind registers the static handlers. With pointer capture the move/up/cancel
// handlers are wired up front; without it they are registered dynamically on
// the shared scope once the gesture starts.
func (d *Drag) bind() {
	d.handles = append(d.handles,
		d.router.addPointerStart(d.target, d.cfg.hitShape, d.pointerDown))
	if d.cfg.pointerCapture || d.cfg.pointerLock {
		d.handles = append(d.handles,
			d.router.OnPointerMove(d.pointerMove),
			d.router.OnPointerEnd(d.pointerUp),
			d.router.OnPointerCancel(d.pointerCancelEvent),
		)
	}
	d.handles = append(d.handles,
		d.router.OnKeyDown(d.keyDown),
		d.router.OnKeyUp(d.keyUp),
	)
	if d.cfg.filterTaps {
		d.handles = append(d.handles, d.router.interceptClick(d.clickCapture))
	}
}

// Unbind removes all listeners, cancels pending timers, and releases any
// platform acquisitions. The Drag must not be used afterwards.
func (d *Drag) Unbind() {
	for _, h := range d.handles {
		h.Remove()
	}
	d.handles = nil
	d.router.cancelTimers(d)
	d.clean()
}

// State returns a snapshot of the current gesture state.
func (d *Drag) State() State {
	return d.state
}

// Target returns the element this gesture is bound to.
func (d *Drag) Target() Element {
	return d.target
}

// --- Pointer transitions ---

func (d *Drag) pointerDown(ev PointerEvent) {
	if !d.cfg.acceptsDevice(ev.Device) {
		return
	}
	if ev.Device == DeviceMouse && ev.Buttons&1 == 0 {
		return
	}
	// A single pointer drives the gesture; further downs are ignored until
	// it is released.
	if d.state.PointerActive || d.state.Delayed || d.scrollPending {
		return
	}

	// A pointer joining a live keyboard gesture keeps the accumulated state;
	// otherwise start fresh.
	fresh := !d.state.Active
	if fresh {
		d.state.reset()
		d.state.StartTime = ev.Timestamp
	}
	d.setupPointer(ev, fresh)

	if d.cfg.pointerLock && d.cfg.surface != nil {
		if err := d.cfg.surface.RequestPointerLock(); err != nil {
			d.router.debugf("request pointer lock: %v", err)
		} else {
			d.locked = true
		}
	}
	if d.cfg.pointerCapture && !d.locked && d.cfg.surface != nil {
		if err := d.cfg.surface.SetPointerCapture(ev.ID); err != nil {
			d.router.debugf("set pointer capture: %v", err)
		} else {
			d.captured = true
		}
	}
	if !d.cfg.pointerCapture && !d.cfg.pointerLock {
		d.dynHandles = append(d.dynHandles,
			d.router.OnPointerMove(d.pointerMove),
			d.router.OnPointerEnd(d.pointerUp),
			d.router.OnPointerCancel(d.pointerCancelEvent),
		)
	}

	if d.cfg.preventScroll {
		// Undecided between scroll and drag: block scrolling now and wait
		// for an axis, or for the forced-activation timer.
		d.scrollPending = true
		d.pendingEvent = ev
		if d.cfg.surface != nil {
			d.cfg.surface.LockScroll(d.cfg.preventScrollAxis)
			d.scrollLocked = true
		}
		d.router.schedule(d, timerPreventScroll, d.cfg.preventScrollDelay, d.forceStart)
		return
	}
	if d.cfg.delay > 0 {
		d.state.Delayed = true
		d.pendingEvent = ev
		d.router.schedule(d, timerDelay, d.cfg.delay, d.delayFired)
		return
	}
	d.startDragging(ev)
}

// setupPointer captures the pointer identity and, on a fresh gesture,
// snapshots the starting geometry. When the pointer joins a gesture the
// keyboard already started, the existing origin and bounds stay: Offset must
// remain from + Movement for the whole continuous gesture.
func (d *Drag) setupPointer(ev PointerEvent, fresh bool) {
	d.state.PointerID = ev.ID
	d.state.Values = ev.Position
	d.state.Initial = ev.Position
	if fresh {
		d.state.from = d.resolveFrom()
		d.state.Bounds = d.cfg.resolveBounds(d.target, d.state.from)
	}
	d.lastTime = ev.Timestamp
	d.lastMoveValid = false
}

func (d *Drag) resolveFrom() Vec2 {
	if d.cfg.from != nil {
		return *d.cfg.from
	}
	return d.state.Offset
}

// delayFired activates the gesture with the event captured at scheduling
// time. Movement before the delay elapses preempts this timer.
func (d *Drag) delayFired() {
	d.startDragging(d.pendingEvent)
}

// forceStart activates a scroll-pending gesture whose axis never resolved
// before the scroll-prevention delay elapsed.
func (d *Drag) forceStart() {
	if !d.scrollPending {
		return
	}
	d.startDragging(d.pendingEvent)
}

// startDragging transitions the pointer source to Dragging and emits the
// activation frame. Accumulated scroll-pending movement carries over.
func (d *Drag) startDragging(ev PointerEvent) {
	d.router.cancelTimer(d, timerDelay)
	d.router.cancelTimer(d, timerPreventScroll)
	d.state.Delayed = false
	if d.scrollPending {
		d.scrollPending = false
	}
	if d.cfg.preventScroll {
		d.state.PreventingScroll = true
	}
	d.state.PointerActive = true
	d.state.Active = true
	// The router clock is ahead of ev.Timestamp when a timer fired this
	// activation with the event captured at scheduling time.
	d.state.ElapsedTime = d.router.now - d.state.StartTime
	d.state.Delta = Vec2{}
	computeKinematics(&d.state, 0, false)
	d.emit(false)
}

func (d *Drag) pointerMove(ev PointerEvent) {
	if d.state.Canceled {
		return
	}
	if d.state.PointerID < 0 || ev.ID != d.state.PointerID {
		return
	}
	if !d.state.PointerActive && !d.state.Delayed && !d.scrollPending {
		return
	}
	// Exact duplicate of the previous sample: drop to avoid double counting.
	if d.lastMoveValid && ev.Device == d.lastMoveDevice && ev.Timestamp == d.lastMoveTime {
		return
	}
	d.lastMoveDevice = ev.Device
	d.lastMoveTime = ev.Timestamp
	d.lastMoveValid = true

	var delta Vec2
	if ev.Locked {
		delta = ev.Movement
	} else {
		delta = Vec2{X: ev.Position.X - d.state.Values.X, Y: ev.Position.Y - d.state.Values.Y}
		d.state.Values = ev.Position
	}

	if d.state.Delayed {
		// Movement preempts the delay timer; this event becomes the
		// activation event and its delta applies below.
		d.router.cancelTimer(d, timerDelay)
		d.startDragging(ev)
	}

	dtMs := float64(ev.Timestamp-d.lastTime) / float64(time.Millisecond)
	d.lastTime = ev.Timestamp
	d.state.ElapsedTime = ev.Timestamp - d.state.StartTime
	d.state.Delta = delta
	d.state.Movement.X += delta.X
	d.state.Movement.Y += delta.Y
	computeKinematics(&d.state, dtMs, true)

	if d.scrollPending {
		// Undecided: the move is swallowed, but movement and axis keep
		// accumulating above so the decision can be made.
		if d.state.Axis == AxisNone {
			return
		}
		if d.cfg.preventScrollAxis == AxisBoth || axisMatches(d.cfg.preventScrollAxis, d.state.Axis) {
			// The user is scrolling: yield without ever becoming active.
			d.rejectScroll()
			return
		}
		d.startDragging(ev)
		return
	}

	d.emit(false)
}

// axisMatches reports whether the detected gesture axis falls on the
// configured prevented axis.
func axisMatches(prevented, detected Axis) bool {
	return prevented == detected
}

// rejectScroll is the designed abort path when scroll prevention determines
// the gesture must yield to native scrolling. The gesture deactivates cleanly
// and never reaches Dragging; nothing is emitted.
func (d *Drag) rejectScroll() {
	d.scrollPending = false
	d.router.cancelTimer(d, timerPreventScroll)
	d.clean()
}

func (d *Drag) pointerUp(ev PointerEvent) {
	if d.state.Canceled {
		return
	}
	if d.state.PointerID < 0 || ev.ID != d.state.PointerID {
		return
	}
	if d.scrollPending {
		// Released before the scroll-vs-drag decision: the gesture never
		// started.
		d.rejectScroll()
		return
	}
	if d.state.Delayed {
		// A tap faster than the delay still counts as a gesture.
		d.router.cancelTimer(d, timerDelay)
		d.startDragging(ev)
	}
	if !d.state.PointerActive {
		return
	}

	d.state.PointerActive = false
	d.state.Active = d.state.KeyboardActive
	d.state.ElapsedTime = ev.Timestamp - d.state.StartTime
	d.state.Delta = Vec2{}
	computeKinematics(&d.state, 0, false)

	force := false
	if d.state.Distance.X <= tapDistance && d.state.Distance.Y <= tapDistance {
		d.state.Tap = true
		force = d.cfg.filterTaps
	}
	if !(d.state.Tap && d.cfg.filterTaps) && d.state.ElapsedTime <= d.cfg.swipeDuration {
		if abs(d.state.Velocity.X) > d.cfg.swipeVelocity.X && abs(d.state.Movement.X) > d.cfg.swipeDistance.X {
			d.state.Swipe.X = sign(d.state.Direction.X)
		}
		if abs(d.state.Velocity.Y) > d.cfg.swipeVelocity.Y && abs(d.state.Movement.Y) > d.cfg.swipeDistance.Y {
			d.state.Swipe.Y = sign(d.state.Direction.Y)
		}
	}

	d.pointerClean()
	d.emit(force)
}

// pointerCancelEvent handles the platform's own cancellation signal.
func (d *Drag) pointerCancelEvent(ev PointerEvent) {
	if d.state.PointerID < 0 || ev.ID != d.state.PointerID {
		return
	}
	d.Cancel()
}

// --- Cancellation ---

// Cancel requests cancellation of the running gesture. The request is
// deferred to the next scheduling turn so any in-flight synchronous
// computation completes first. Idempotent.
func (d *Drag) Cancel() {
	if d.state.Canceled {
		return
	}
	d.router.schedule(d, timerCancel, 0, d.doCancel)
}

func (d *Drag) doCancel() {
	if d.state.Canceled {
		return
	}
	wasActive := d.state.Active || d.state.Delayed || d.scrollPending
	d.state.Canceled = true
	d.state.Delayed = false
	d.scrollPending = false
	d.state.PointerActive = false
	d.state.KeyboardActive = false
	d.state.Active = false
	d.state.Delta = Vec2{}
	// Freeze pass: derived values keep their last computed magnitudes.
	computeKinematics(&d.state, 0, false)
	d.pointerClean()
	if wasActive {
		d.emit(true)
	}
}

// --- Keyboard transitions ---

func (d *Drag) keyDown(ev KeyEvent) {
	dir, ok := keyDirection(ev.Key)
	if !ok {
		return
	}

	if !d.state.Active && !d.state.Delayed && !d.scrollPending {
		d.state.reset()
		d.state.StartTime = ev.Timestamp
		d.state.from = d.resolveFrom()
		d.state.Bounds = d.cfg.resolveBounds(d.target, d.state.from)
		d.lastTime = ev.Timestamp
	}

	factor := 1.0
	switch {
	case ev.Fast:
		// Fast wins when both modifiers are held.
		factor = 10
	case ev.Fine:
		factor = 0.1
	}
	step := d.cfg.keyboardDisplacement * factor

	d.state.KeyboardActive = true
	d.state.Active = true
	dtMs := float64(ev.Timestamp-d.lastTime) / float64(time.Millisecond)
	d.lastTime = ev.Timestamp
	d.state.ElapsedTime = ev.Timestamp - d.state.StartTime
	d.state.Delta = Vec2{X: dir.X * step, Y: dir.Y * step}
	d.state.Movement.X += d.state.Delta.X
	d.state.Movement.Y += d.state.Delta.Y
	computeKinematics(&d.state, dtMs, true)
	d.emit(false)
}

func (d *Drag) keyUp(ev KeyEvent) {
	if _, ok := keyDirection(ev.Key); !ok {
		return
	}
	if !d.state.KeyboardActive {
		return
	}
	d.state.KeyboardActive = false
	d.state.Active = d.state.PointerActive
	d.state.ElapsedTime = ev.Timestamp - d.state.StartTime
	d.state.Delta = Vec2{}
	computeKinematics(&d.state, 0, false)
	d.emit(false)
}

// --- Click interception ---

// clickCapture suppresses the click that follows a real drag. A click whose
// terminal state classified as a tap passes through untouched.
func (d *Drag) clickCapture(ev ClickEvent) bool {
	if ev.Target != nil && ev.Target != d.target {
		return false
	}
	return !d.state.Tap
}

// --- Teardown ---

// pointerClean releases the pointer-side platform acquisitions and pending
// activation timers. Source-active flags are left to the caller.
func (d *Drag) pointerClean() {
	d.router.cancelTimer(d, timerDelay)
	d.router.cancelTimer(d, timerPreventScroll)
	for _, h := range d.dynHandles {
		h.Remove()
	}
	d.dynHandles = nil
	if d.captured {
		if err := d.cfg.surface.ReleasePointerCapture(d.state.PointerID); err != nil {
			// The platform may have released the pointer already; the
			// gesture proceeds unaffected.
			d.router.debugf("release pointer capture: %v", err)
		}
		d.captured = false
	}
	if d.locked {
		d.cfg.surface.ExitPointerLock()
		d.locked = false
	}
	if d.scrollLocked {
		d.cfg.surface.UnlockScroll()
		d.scrollLocked = false
	}
	d.state.PreventingScroll = false
}

// clean forcibly aborts the gesture: all pointer resources released and both
// source-active flags cleared. Used on scroll rejection and unbind.
func (d *Drag) clean() {
	d.pointerClean()
	d.state.Delayed = false
	d.scrollPending = false
	d.state.PointerActive = false
	d.state.KeyboardActive = false
	d.state.Active = false
}

// --- Emission ---

// emit hands the current snapshot to the consumer. Frames that neither are
// active nor cross an activity or cancellation boundary are suppressed unless
// forced (a filtered tap must always report its terminal frame).
func (d *Drag) emit(force bool) {
	if !force && !d.state.Active && !d.lastActive && d.state.Canceled == d.lastCanceled {
		return
	}
	d.lastActive = d.state.Active
	d.lastCanceled = d.state.Canceled
	if d.handler != nil {
		d.handler(d.state)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
