package gesture

import "time"

// eventKind identifies a registration slot for handle removal.
type eventKind uint8

const (
	eventPointerStart eventKind = iota
	eventPointerMove
	eventPointerEnd
	eventPointerCancel
	eventKeyDown
	eventKeyUp
	eventClickCapture
	eventClick
)

// --- Handler registry ---

type pointerHandler struct {
	id     uint32
	target Element  // non-nil: only events hitting this target (start scope)
	shape  HitShape // optional narrowing of the target's frame
	fn     func(PointerEvent)
}

type keyHandler struct {
	id uint32
	fn func(KeyEvent)
}

type clickHandler struct {
	id uint32
	fn func(ClickEvent)
}

// clickInterceptor runs before click handlers; returning true suppresses the
// click entirely.
type clickInterceptor struct {
	id uint32
	fn func(ClickEvent) bool
}

// --- Timers ---

type timerEntry struct {
	owner any
	name  string
	at    time.Duration
	seq   uint64
	fn    func()
}

// Router owns scoped event subscriptions and named, cancelable deferred
// callbacks for the gesture engines bound to it. Dispatch is single-threaded
// and cooperative: each event is processed to completion before the next, and
// due timers fire between events, never inside one.
type Router struct {
	pointerStart  []pointerHandler
	pointerMove   []pointerHandler
	pointerEnd    []pointerHandler
	pointerCancel []pointerHandler
	keyDown       []keyHandler
	keyUp         []keyHandler
	clickCapture  []clickInterceptor
	click         []clickHandler

	timers  []timerEntry
	nextID  uint32
	nextSeq uint64
	now     time.Duration
	debug   bool
}

// NewRouter creates an empty router. Feed it events from an InputSource or
// directly via the dispatch methods.
func NewRouter() *Router {
	return &Router{}
}

// SetDebug enables non-fatal diagnostics on stderr.
func (r *Router) SetDebug(enabled bool) {
	r.debug = enabled
}

// Now returns the router's current cooperative clock reading.
func (r *Router) Now() time.Duration {
	return r.now
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	r     *Router
	event eventKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.r == nil {
		return
	}
	switch h.event {
	case eventPointerStart:
		h.r.pointerStart = removePointerHandler(h.r.pointerStart, h.id)
	case eventPointerMove:
		h.r.pointerMove = removePointerHandler(h.r.pointerMove, h.id)
	case eventPointerEnd:
		h.r.pointerEnd = removePointerHandler(h.r.pointerEnd, h.id)
	case eventPointerCancel:
		h.r.pointerCancel = removePointerHandler(h.r.pointerCancel, h.id)
	case eventKeyDown:
		h.r.keyDown = removeKeyHandler(h.r.keyDown, h.id)
	case eventKeyUp:
		h.r.keyUp = removeKeyHandler(h.r.keyUp, h.id)
	case eventClickCapture:
		h.r.clickCapture = removeClickInterceptor(h.r.clickCapture, h.id)
	case eventClick:
		h.r.click = removeClickHandler(h.r.click, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeKeyHandler(s []keyHandler, id uint32) []keyHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = keyHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickInterceptor(s []clickInterceptor, id uint32) []clickInterceptor {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickInterceptor{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Registration ---

func (r *Router) addPointerStart(target Element, shape HitShape, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	r.pointerStart = append(r.pointerStart, pointerHandler{id: r.nextID, target: target, shape: shape, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventPointerStart}
}

// OnPointerStart registers a callback for pointer-down events hitting target.
// A nil target receives every start event.
func (r *Router) OnPointerStart(target Element, fn func(PointerEvent)) CallbackHandle {
	return r.addPointerStart(target, nil, fn)
}

// OnPointerMove registers a shared-scope callback for pointer move events.
func (r *Router) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	r.pointerMove = append(r.pointerMove, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventPointerMove}
}

// OnPointerEnd registers a shared-scope callback for pointer release events.
func (r *Router) OnPointerEnd(fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	r.pointerEnd = append(r.pointerEnd, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventPointerEnd}
}

// OnPointerCancel registers a shared-scope callback for platform pointer
// cancellation events.
func (r *Router) OnPointerCancel(fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	r.pointerCancel = append(r.pointerCancel, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventPointerCancel}
}

// OnKeyDown registers a callback for key press events.
func (r *Router) OnKeyDown(fn func(KeyEvent)) CallbackHandle {
	r.nextID++
	r.keyDown = append(r.keyDown, keyHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventKeyDown}
}

// OnKeyUp registers a callback for key release events.
func (r *Router) OnKeyUp(fn func(KeyEvent)) CallbackHandle {
	r.nextID++
	r.keyUp = append(r.keyUp, keyHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventKeyUp}
}

// OnClick registers a callback for synthesized clicks. Clicks suppressed by a
// capturing interceptor never reach these handlers.
func (r *Router) OnClick(fn func(ClickEvent)) CallbackHandle {
	r.nextID++
	r.click = append(r.click, clickHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventClick}
}

// interceptClick registers a capturing interceptor that may suppress a click
// before it reaches OnClick handlers.
func (r *Router) interceptClick(fn func(ClickEvent) bool) CallbackHandle {
	r.nextID++
	r.clickCapture = append(r.clickCapture, clickInterceptor{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, r: r, event: eventClickCapture}
}

// --- Dispatch ---

// advance moves the cooperative clock forward and fires timers that came due,
// in deadline order, before the caller dispatches its event.
func (r *Router) advance(ts time.Duration) {
	if ts > r.now {
		r.now = ts
	}
	r.flush()
}

// Tick advances the clock without an event, firing any due timers. Call it
// once per frame from the input source.
func (r *Router) Tick(now time.Duration) {
	r.advance(now)
}

// PointerStart dispatches a pointer-down event to start handlers whose target
// matches ev.Target (nil-target handlers receive everything).
func (r *Router) PointerStart(ev PointerEvent) {
	r.advance(ev.Timestamp)
	for _, h := range r.pointerStart {
		if h.target == nil || h.target == ev.Target {
			h.fn(ev)
		}
	}
}

// PointerMove dispatches a pointer move to all shared-scope move handlers.
func (r *Router) PointerMove(ev PointerEvent) {
	r.advance(ev.Timestamp)
	for _, h := range r.pointerMove {
		h.fn(ev)
	}
}

// PointerEnd dispatches a pointer release to all shared-scope end handlers.
func (r *Router) PointerEnd(ev PointerEvent) {
	r.advance(ev.Timestamp)
	for _, h := range r.pointerEnd {
		h.fn(ev)
	}
}

// PointerCancel dispatches a platform pointer cancellation.
func (r *Router) PointerCancel(ev PointerEvent) {
	r.advance(ev.Timestamp)
	for _, h := range r.pointerCancel {
		h.fn(ev)
	}
}

// KeyDown dispatches a key press.
func (r *Router) KeyDown(ev KeyEvent) {
	r.advance(ev.Timestamp)
	for _, h := range r.keyDown {
		h.fn(ev)
	}
}

// KeyUp dispatches a key release.
func (r *Router) KeyUp(ev KeyEvent) {
	r.advance(ev.Timestamp)
	for _, h := range r.keyUp {
		h.fn(ev)
	}
}

// Click dispatches a synthesized click through the capturing interceptors and
// then the click handlers. It reports whether an interceptor suppressed it.
func (r *Router) Click(ev ClickEvent) bool {
	r.advance(ev.Timestamp)
	for _, h := range r.clickCapture {
		if h.fn(ev) {
			return true
		}
	}
	for _, h := range r.click {
		h.fn(ev)
	}
	return false
}

// hitTest finds the topmost bound target at p: the most recently registered
// start handler whose frame (narrowed by its hit shape, if any) contains p.
func (r *Router) hitTest(p Vec2) Element {
	for i := len(r.pointerStart) - 1; i >= 0; i-- {
		h := r.pointerStart[i]
		if h.target == nil {
			continue
		}
		f := h.target.Frame()
		if h.shape != nil {
			if h.shape.Contains(p.X-f.X, p.Y-f.Y) {
				return h.target
			}
			continue
		}
		if f.Contains(p.X, p.Y) {
			return h.target
		}
	}
	return nil
}

// --- Deferred timers ---

// schedule registers fn to run once the clock reaches now+delay. A timer with
// the same owner and name replaces the pending one.
func (r *Router) schedule(owner any, name string, delay time.Duration, fn func()) {
	r.cancelTimer(owner, name)
	r.nextSeq++
	r.timers = append(r.timers, timerEntry{
		owner: owner, name: name,
		at:  r.now + delay,
		seq: r.nextSeq,
		fn:  fn,
	})
}

// cancelTimer drops the pending timer with the given owner and name.
// Cancellation is unconditional and immediate: a canceled timer never fires.
func (r *Router) cancelTimer(owner any, name string) {
	for i := range r.timers {
		if r.timers[i].owner == owner && r.timers[i].name == name {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			return
		}
	}
}

// cancelTimers drops every pending timer belonging to owner.
func (r *Router) cancelTimers(owner any) {
	kept := r.timers[:0]
	for _, t := range r.timers {
		if t.owner != owner {
			kept = append(kept, t)
		}
	}
	r.timers = kept
}

// flush fires due timers in deadline order. Timers scheduled while flushing
// wait for the next scheduling turn, so a deferred callback never runs inside
// the computation that requested it.
func (r *Router) flush() {
	barrier := r.nextSeq
	for {
		best := -1
		for i, t := range r.timers {
			if t.at > r.now || t.seq > barrier {
				continue
			}
			if best == -1 || t.at < r.timers[best].at ||
				(t.at == r.timers[best].at && t.seq < r.timers[best].seq) {
				best = i
			}
		}
		if best == -1 {
			return
		}
		t := r.timers[best]
		r.timers = append(r.timers[:best], r.timers[best+1:]...)
		t.fn()
	}
}
