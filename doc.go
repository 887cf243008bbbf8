// Package gesture recognizes drag gestures from a pointing device and a
// keyboard merged into one state machine, and produces a continuously updated
// kinematic description of the gesture: delta, accumulated movement,
// velocity, direction, distance, axis lock, and bounds-clamped offset, plus
// tap and swipe classification at gesture end.
//
// # Quick start
//
// Create a [Router], bind a drag to a target, and feed it input. With
// [Ebitengine], an [InputSource] polls the mouse, touch, and arrow keys for
// you:
//
//	router := gesture.NewRouter()
//	source := gesture.NewInputSource(router)
//
//	drag := router.BindDrag(box, func(s gesture.State) {
//		box.X, box.Y = s.Offset.X, s.Offset.Y
//	}, gesture.DragConfig{})
//
//	// in your ebiten.Game:
//	func (g *Game) Update() error { source.Update(); return nil }
//
// Call [Drag.Unbind] to release listeners, timers, and any platform
// acquisitions.
//
// # State machine
//
// A gesture is driven by two independent sources merged into one Active
// flag: a single captured pointer (taps, drags, swipes) and the four arrow
// keys (fixed displacement per press, x10 with the fast modifier, x0.1 with
// the fine one). Activation can be delayed ([DragConfig.Delay], preempted by
// movement) or gated on a scroll-versus-drag decision
// ([DragConfig.PreventScroll]): movement along the prevented axis yields to
// native scrolling, movement along the other axis starts the drag.
//
// [Drag.Cancel] requests cancellation; it is deferred to the next scheduling
// turn and idempotent.
//
// # Headless use
//
// Nothing in the state machine requires a display: dispatch [PointerEvent]
// and [KeyEvent] values directly through the [Router], or drive an
// [InputSource] with injected events and a JSON [TestRunner] script.
//
// [Ebitengine]: https://ebitengine.org
package gesture
