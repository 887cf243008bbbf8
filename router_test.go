package gesture

import (
	"testing"
	"time"
)

// testElement is a fixed-frame drag target for tests.
type testElement struct {
	frame Rect
}

func (e *testElement) Frame() Rect { return e.frame }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestRouterTimer_FiresAtDeadline(t *testing.T) {
	r := NewRouter()
	fired := 0
	r.schedule("owner", "t", ms(100), func() { fired++ })

	r.Tick(ms(99))
	if fired != 0 {
		t.Fatal("timer fired before its deadline")
	}
	r.Tick(ms(100))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	r.Tick(ms(200))
	if fired != 1 {
		t.Errorf("fired = %d after extra tick, want 1", fired)
	}
}

func TestRouterTimer_CancelIsUnconditional(t *testing.T) {
	r := NewRouter()
	fired := false
	r.schedule("owner", "t", ms(50), func() { fired = true })
	r.cancelTimer("owner", "t")
	r.Tick(ms(500))
	if fired {
		t.Error("canceled timer fired")
	}
}

func TestRouterTimer_SameKeyReplaces(t *testing.T) {
	r := NewRouter()
	var order []int
	r.schedule("owner", "t", ms(50), func() { order = append(order, 1) })
	r.schedule("owner", "t", ms(80), func() { order = append(order, 2) })
	r.Tick(ms(200))
	if len(order) != 1 || order[0] != 2 {
		t.Errorf("order = %v, want [2]", order)
	}
}

func TestRouterTimer_DeadlineOrder(t *testing.T) {
	r := NewRouter()
	var order []string
	r.schedule("a", "late", ms(100), func() { order = append(order, "late") })
	r.schedule("b", "early", ms(20), func() { order = append(order, "early") })
	r.schedule("c", "mid", ms(60), func() { order = append(order, "mid") })
	r.Tick(ms(150))
	want := []string{"early", "mid", "late"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRouterTimer_EarlierCallbackCancelsLater(t *testing.T) {
	r := NewRouter()
	laterFired := false
	r.schedule("a", "first", ms(10), func() { r.cancelTimer("b", "second") })
	r.schedule("b", "second", ms(20), func() { laterFired = true })
	r.Tick(ms(100))
	if laterFired {
		t.Error("timer canceled by an earlier callback still fired")
	}
}

func TestRouterTimer_ScheduledDuringFlushWaits(t *testing.T) {
	r := NewRouter()
	nested := 0
	r.schedule("a", "t", ms(10), func() {
		r.schedule("a", "nested", 0, func() { nested++ })
	})
	r.Tick(ms(50))
	if nested != 0 {
		t.Fatal("timer scheduled during flush ran in the same turn")
	}
	r.Tick(ms(51))
	if nested != 1 {
		t.Errorf("nested = %d, want 1 after next turn", nested)
	}
}

func TestRouterTimer_CancelTimersDropsOwnerOnly(t *testing.T) {
	r := NewRouter()
	var fired []string
	r.schedule("a", "one", ms(10), func() { fired = append(fired, "a1") })
	r.schedule("a", "two", ms(20), func() { fired = append(fired, "a2") })
	r.schedule("b", "one", ms(30), func() { fired = append(fired, "b1") })
	r.cancelTimers("a")
	r.Tick(ms(100))
	if len(fired) != 1 || fired[0] != "b1" {
		t.Errorf("fired = %v, want [b1]", fired)
	}
}

func TestRouterDispatch_TargetScope(t *testing.T) {
	r := NewRouter()
	a := &testElement{frame: Rect{Width: 10, Height: 10}}
	b := &testElement{frame: Rect{X: 20, Width: 10, Height: 10}}

	var gotA, gotB, gotAll int
	r.OnPointerStart(a, func(PointerEvent) { gotA++ })
	r.OnPointerStart(b, func(PointerEvent) { gotB++ })
	r.OnPointerStart(nil, func(PointerEvent) { gotAll++ })

	r.PointerStart(PointerEvent{Target: a, Timestamp: ms(1)})
	r.PointerStart(PointerEvent{Target: b, Timestamp: ms(2)})
	r.PointerStart(PointerEvent{Timestamp: ms(3)})

	if gotA != 1 || gotB != 1 || gotAll != 3 {
		t.Errorf("gotA=%d gotB=%d gotAll=%d, want 1 1 3", gotA, gotB, gotAll)
	}
}

func TestRouterDispatch_HandleRemove(t *testing.T) {
	r := NewRouter()
	got := 0
	h := r.OnPointerMove(func(PointerEvent) { got++ })
	r.PointerMove(PointerEvent{Timestamp: ms(1)})
	h.Remove()
	r.PointerMove(PointerEvent{Timestamp: ms(2)})
	if got != 1 {
		t.Errorf("got = %d, want 1", got)
	}
}

func TestRouterHitTest(t *testing.T) {
	r := NewRouter()
	under := &testElement{frame: Rect{X: 0, Y: 0, Width: 100, Height: 100}}
	over := &testElement{frame: Rect{X: 50, Y: 50, Width: 100, Height: 100}}
	r.OnPointerStart(under, func(PointerEvent) {})
	r.OnPointerStart(over, func(PointerEvent) {})

	if got := r.hitTest(Vec2{X: 75, Y: 75}); got != over {
		t.Error("most recently bound target should win in the overlap")
	}
	if got := r.hitTest(Vec2{X: 10, Y: 10}); got != under {
		t.Error("point outside the top target should fall through")
	}
	if got := r.hitTest(Vec2{X: 300, Y: 300}); got != nil {
		t.Errorf("hitTest(outside) = %v, want nil", got)
	}
}

func TestRouterHitTest_Shape(t *testing.T) {
	r := NewRouter()
	el := &testElement{frame: Rect{X: 100, Y: 100, Width: 100, Height: 100}}
	r.addPointerStart(el, HitCircle{CenterX: 50, CenterY: 50, Radius: 20}, func(PointerEvent) {})

	if got := r.hitTest(Vec2{X: 150, Y: 150}); got != el {
		t.Error("point inside the circle should hit")
	}
	// Inside the frame but outside the circle.
	if got := r.hitTest(Vec2{X: 105, Y: 105}); got != nil {
		t.Errorf("hitTest(corner) = %v, want nil", got)
	}
}

func TestRouterClick_InterceptorSuppresses(t *testing.T) {
	r := NewRouter()
	reached := 0
	suppress := true
	r.interceptClick(func(ClickEvent) bool { return suppress })
	r.OnClick(func(ClickEvent) { reached++ })

	if !r.Click(ClickEvent{Timestamp: ms(1)}) {
		t.Error("Click should report suppression")
	}
	if reached != 0 {
		t.Fatal("suppressed click reached handlers")
	}

	suppress = false
	if r.Click(ClickEvent{Timestamp: ms(2)}) {
		t.Error("Click should pass when the interceptor declines")
	}
	if reached != 1 {
		t.Errorf("reached = %d, want 1", reached)
	}
}
