package gesture

// syntheticEvent is a single injected input event. Synthetic events are
// consumed one per frame from the source's Update, so they run through the
// exact same pipeline as real input.
type syntheticEvent struct {
	key        Key // KeyNone for pointer events
	pos        Vec2
	pressed    bool
	fast, fine bool
}

// InjectPress queues a pointer press at the given coordinates (primary
// button). The event is consumed on the next frame's Update call.
func (s *InputSource) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		pos: Vec2{X: x, Y: y}, pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *InputSource) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		pos: Vec2{X: x, Y: y}, pressed: true,
	})
}

// InjectRelease queues a pointer release at the given coordinates.
func (s *InputSource) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		pos: Vec2{X: x, Y: y}, pressed: false,
	})
}

// InjectTap is a convenience that queues a press followed by a release at the
// same coordinates. Consumes two frames.
func (s *InputSource) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *InputSource) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectKeyDown queues a key press with the given speed modifiers.
func (s *InputSource) InjectKeyDown(key Key, fast, fine bool) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		key: key, pressed: true, fast: fast, fine: fine,
	})
}

// InjectKeyUp queues a key release.
func (s *InputSource) InjectKeyUp(key Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		key: key,
	})
}

// processInjected pops one synthetic event and feeds it through the same
// state machines as hardware input. Returns true if a pointer event was
// consumed (real pointer input is skipped that frame).
func (s *InputSource) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.key != KeyNone {
		ev := KeyEvent{Key: evt.key, Fast: evt.fast, Fine: evt.fine, Timestamp: s.now}
		if evt.pressed {
			s.router.KeyDown(ev)
		} else {
			s.router.KeyUp(ev)
		}
		// Key injections do not shadow real pointer input.
		return false
	}

	s.applyMouse(evt.pos, evt.pressed)
	return true
}

// PendingInjections reports how many injected events are still queued.
func (s *InputSource) PendingInjections() int {
	return len(s.injectQueue)
}
