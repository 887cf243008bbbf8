package gesture

import (
	"testing"
	"time"
)

func TestResolveDragConfig_Defaults(t *testing.T) {
	rc := resolveDragConfig(DragConfig{})

	if !rc.pointerCapture {
		t.Error("pointer capture should default on")
	}
	if rc.preventScrollAxis != AxisY {
		t.Errorf("preventScrollAxis = %v, want AxisY", rc.preventScrollAxis)
	}
	if rc.preventScrollDelay != defaultPreventScrollDelay {
		t.Errorf("preventScrollDelay = %v, want %v", rc.preventScrollDelay, defaultPreventScrollDelay)
	}
	if rc.swipeVelocity.X != defaultSwipeVelocity || rc.swipeVelocity.Y != defaultSwipeVelocity {
		t.Errorf("swipeVelocity = %+v, want defaults", rc.swipeVelocity)
	}
	if rc.swipeDistance.X != defaultSwipeDistance || rc.swipeDistance.Y != defaultSwipeDistance {
		t.Errorf("swipeDistance = %+v, want defaults", rc.swipeDistance)
	}
	if rc.swipeDuration != defaultSwipeDuration {
		t.Errorf("swipeDuration = %v, want %v", rc.swipeDuration, defaultSwipeDuration)
	}
	if rc.keyboardDisplacement != defaultKeyboardDisplacement {
		t.Errorf("keyboardDisplacement = %v, want %v", rc.keyboardDisplacement, defaultKeyboardDisplacement)
	}
}

func TestResolveDragConfig_NegativeDelayClamped(t *testing.T) {
	rc := resolveDragConfig(DragConfig{Delay: -time.Second})
	if rc.delay != 0 {
		t.Errorf("delay = %v, want 0", rc.delay)
	}
}

func TestResolveDragConfig_PointerLockDisablesCapture(t *testing.T) {
	rc := resolveDragConfig(DragConfig{PointerLock: true})
	if rc.pointerCapture {
		t.Error("pointer capture should be off under pointer lock")
	}
}

func TestAcceptsDevice(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Device
		ev     Device
		accept bool
	}{
		{"pointer accepts mouse", DevicePointer, DeviceMouse, true},
		{"pointer accepts touch", DevicePointer, DeviceTouch, true},
		{"mouse accepts mouse", DeviceMouse, DeviceMouse, true},
		{"mouse rejects touch", DeviceMouse, DeviceTouch, false},
		{"touch rejects mouse", DeviceTouch, DeviceMouse, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := resolveDragConfig(DragConfig{Device: tt.cfg})
			if got := rc.acceptsDevice(tt.ev); got != tt.accept {
				t.Errorf("acceptsDevice(%v) = %v, want %v", tt.ev, got, tt.accept)
			}
		})
	}
}

func TestResolveBounds_ExplicitLimitsWin(t *testing.T) {
	want := Bounds{MinX: -1, MaxX: 1, MinY: -2, MaxY: 2}
	rc := resolveDragConfig(DragConfig{
		Bounds:        &want,
		BoundsElement: &testElement{frame: Rect{Width: 100, Height: 100}},
	})
	if got := rc.resolveBounds(&testElement{}, Vec2{}); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}

func TestResolveBounds_FromElementGeometry(t *testing.T) {
	container := &testElement{frame: Rect{X: 0, Y: 0, Width: 400, Height: 300}}
	target := &testElement{frame: Rect{X: 100, Y: 100, Width: 50, Height: 50}}

	rc := resolveDragConfig(DragConfig{BoundsElement: container})
	got := rc.resolveBounds(target, Vec2{})
	want := Bounds{MinX: -100, MaxX: 250, MinY: -100, MaxY: 150}
	if got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}

	// The starting offset shifts the permissible rectangle with it.
	got = rc.resolveBounds(target, Vec2{X: 20, Y: -10})
	want = Bounds{MinX: -80, MaxX: 270, MinY: -110, MaxY: 140}
	if got != want {
		t.Errorf("offset bounds = %+v, want %+v", got, want)
	}
}

func TestResolveBounds_Unlimited(t *testing.T) {
	rc := resolveDragConfig(DragConfig{})
	if got := rc.resolveBounds(&testElement{}, Vec2{}); got != Unlimited() {
		t.Errorf("bounds = %+v, want unlimited", got)
	}
}
