package gesture

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// Key repeat for held arrow keys, in frames (60 TPS: ~0.5s delay, ~100ms rate).
const (
	keyRepeatDelayFrames    = 30
	keyRepeatIntervalFrames = 6
)

// arrowKeys maps the recognized platform keys to gesture keys.
var arrowKeys = map[ebiten.Key]Key{
	ebiten.KeyArrowLeft:  KeyArrowLeft,
	ebiten.KeyArrowRight: KeyArrowRight,
	ebiten.KeyArrowUp:    KeyArrowUp,
	ebiten.KeyArrowDown:  KeyArrowDown,
}

// InputSource polls Ebitengine mouse, touch, and keyboard state once per
// frame and synthesizes gesture events into its router. Pointer 0 is the
// mouse; touches occupy pointers 1-9.
type InputSource struct {
	router *Router
	start  time.Time
	now    time.Duration

	// Mouse (pointer 0).
	mouseDown  bool
	mousePos   Vec2
	downTarget Element

	// Touch slot allocation (pointers 1-9).
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchPos     [maxPointers]Vec2
	prevTouchIDs []ebiten.TouchID

	// Keyboard edge detection and repeat.
	keyHeld map[Key]int // frames held, present only while down

	injectQueue []syntheticEvent
	script      *TestRunner
}

// NewInputSource creates a source feeding r. Call Update once per frame from
// the game loop.
func NewInputSource(r *Router) *InputSource {
	return &InputSource{
		router:  r,
		start:   time.Now(),
		keyHeld: make(map[Key]int),
	}
}

// Now returns the source's monotonic clock reading for the current frame.
func (s *InputSource) Now() time.Duration {
	return s.now
}

// Update advances the clock, fires due timers, and dispatches this frame's
// input. Injected synthetic events take priority over real hardware input,
// one per frame, so scripted sequences behave like real ones.
func (s *InputSource) Update() {
	s.now = time.Since(s.start)
	s.router.Tick(s.now)

	if s.script != nil {
		s.script.step(s)
	}
	if !s.processInjected() {
		s.processMouse()
		s.processTouches()
	}
	s.processKeys()
}

// processMouse reads hardware mouse state and feeds the pointer-0 pipeline.
func (s *InputSource) processMouse() {
	mx, my := ebiten.CursorPosition()
	pos := Vec2{X: float64(mx), Y: float64(my)}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.applyMouse(pos, pressed)
}

// applyMouse runs the pointer-0 state machine for one sample. Shared by the
// hardware path and injected events.
func (s *InputSource) applyMouse(pos Vec2, pressed bool) {
	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		s.mousePos = pos
		target := s.router.hitTest(pos)
		s.downTarget = target
		s.router.PointerStart(PointerEvent{
			ID: 0, Device: DeviceMouse, Position: pos, Buttons: 1,
			Target: target, Timestamp: s.now,
		})
	case pressed && s.mouseDown:
		if pos != s.mousePos {
			s.mousePos = pos
			s.router.PointerMove(PointerEvent{
				ID: 0, Device: DeviceMouse, Position: pos, Buttons: 1,
				Timestamp: s.now,
			})
		}
	case !pressed && s.mouseDown:
		s.mouseDown = false
		s.mousePos = pos
		s.router.PointerEnd(PointerEvent{
			ID: 0, Device: DeviceMouse, Position: pos,
			Timestamp: s.now,
		})
		// A press/release pair over the same target synthesizes a click,
		// subject to the capturing interceptors.
		if target := s.router.hitTest(pos); target != nil && target == s.downTarget {
			s.router.Click(ClickEvent{Target: target, Position: pos, Timestamp: s.now})
		}
		s.downTarget = nil
	}
}

// processTouches maps platform touch ids onto pointer slots 1-9 and feeds
// start/move/end events for each.
func (s *InputSource) processTouches() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		existing := s.findTouchSlot(tid)
		slot := existing
		if slot < 0 {
			slot = s.allocTouchSlot(tid)
			if slot < 0 {
				continue
			}
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		pos := Vec2{X: float64(tx), Y: float64(ty)}
		if existing < 0 {
			s.touchPos[slot] = pos
			s.router.PointerStart(PointerEvent{
				ID: slot, Device: DeviceTouch, Position: pos, Buttons: 1,
				Target: s.router.hitTest(pos), Timestamp: s.now,
			})
			continue
		}
		if pos != s.touchPos[slot] {
			s.touchPos[slot] = pos
			s.router.PointerMove(PointerEvent{
				ID: slot, Device: DeviceTouch, Position: pos, Buttons: 1,
				Timestamp: s.now,
			})
		}
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			s.router.PointerEnd(PointerEvent{
				ID: i, Device: DeviceTouch, Position: s.touchPos[i],
				Timestamp: s.now,
			})
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// findTouchSlot returns the slot already mapped to tid, or -1.
func (s *InputSource) findTouchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	return -1
}

// allocTouchSlot claims a free slot for tid. Returns -1 if all are taken.
func (s *InputSource) allocTouchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processKeys edge-detects the four arrow keys with simple hold-to-repeat.
// Shift is the fast modifier, Alt the fine one.
func (s *InputSource) processKeys() {
	fast := ebiten.IsKeyPressed(ebiten.KeyShift) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	fine := ebiten.IsKeyPressed(ebiten.KeyAlt) ||
		ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight)

	for ek, k := range arrowKeys {
		pressed := ebiten.IsKeyPressed(ek)
		held, wasDown := s.keyHeld[k]
		switch {
		case pressed && !wasDown:
			s.keyHeld[k] = 0
			s.router.KeyDown(KeyEvent{Key: k, Fast: fast, Fine: fine, Timestamp: s.now})
		case pressed && wasDown:
			held++
			s.keyHeld[k] = held
			if held >= keyRepeatDelayFrames && (held-keyRepeatDelayFrames)%keyRepeatIntervalFrames == 0 {
				s.router.KeyDown(KeyEvent{Key: k, Fast: fast, Fine: fine, Timestamp: s.now})
			}
		case !pressed && wasDown:
			delete(s.keyHeld, k)
			s.router.KeyUp(KeyEvent{Key: k, Fast: fast, Fine: fine, Timestamp: s.now})
		}
	}
}
