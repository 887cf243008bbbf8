package gesture

import "testing"

func TestLoadTestScript(t *testing.T) {
	script := []byte(`{
		"steps": [
			{"action": "press", "x": 10, "y": 20},
			{"action": "wait", "frames": 3},
			{"action": "release", "x": 10, "y": 20}
		]
	}`)
	r, err := LoadTestScript(script)
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(r.steps) != 3 {
		t.Errorf("steps = %d, want 3", len(r.steps))
	}
	if r.Done() {
		t.Error("fresh runner should not be done")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{not json`)); err == nil {
		t.Error("malformed JSON should fail")
	}
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("empty script should fail")
	}
}

func TestScriptKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"left", KeyArrowLeft},
		{"right", KeyArrowRight},
		{"up", KeyArrowUp},
		{"down", KeyArrowDown},
		{"space", KeyNone},
		{"", KeyNone},
	}
	for _, tt := range tests {
		if got := scriptKey(tt.name); got != tt.want {
			t.Errorf("scriptKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTestRunnerWaitsForInjectionDrain(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{
		"steps": [
			{"action": "drag", "fromX": 0, "fromY": 0, "toX": 30, "toY": 0, "frames": 4},
			{"action": "tap", "x": 5, "y": 5}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	s := NewInputSource(NewRouter())
	runner.step(s)
	if got := s.PendingInjections(); got != 4 {
		t.Fatalf("pending = %d after drag step, want 4", got)
	}

	// The runner must not advance while the queue drains.
	runner.step(s)
	if got := s.PendingInjections(); got != 4 {
		t.Error("runner advanced before the queue drained")
	}

	for frame := 0; s.PendingInjections() > 0; frame++ {
		s.now = ms(16 * (frame + 1))
		s.processInjected()
	}
	runner.step(s)
	if got := s.PendingInjections(); got != 2 {
		t.Errorf("pending = %d after tap step, want 2", got)
	}
}

func TestTestRunnerWaitCountsFrames(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{
		"steps": [
			{"action": "wait", "frames": 2},
			{"action": "press", "x": 1, "y": 1}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	s := NewInputSource(NewRouter())
	runner.step(s) // consumes the wait step, arms the counter
	runner.step(s) // wait frame 1
	runner.step(s) // wait frame 2
	if s.PendingInjections() != 0 {
		t.Fatal("press injected during the wait window")
	}
	runner.step(s)
	if s.PendingInjections() != 1 {
		t.Error("press not injected after the wait elapsed")
	}
}

func TestTestRunnerDrivesGestureEndToEnd(t *testing.T) {
	r := NewRouter()
	el := &testElement{frame: Rect{Width: 100, Height: 100}}
	rec := &recorder{}
	r.BindDrag(el, rec.handle, DragConfig{})

	s := NewInputSource(r)
	runner, err := LoadTestScript([]byte(`{
		"steps": [
			{"action": "drag", "fromX": 50, "fromY": 50, "toX": 80, "toY": 50, "frames": 4}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// Drive the frame loop by hand: step the script, then consume one
	// injected event per frame, exactly as Update does.
	for frame := 1; frame <= 20 && !runner.Done(); frame++ {
		s.now = ms(16 * frame)
		runner.step(s)
		s.processInjected()
	}

	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	last := rec.last()
	if last.Active {
		t.Error("gesture should have ended")
	}
	if last.Movement != (Vec2{X: 30}) {
		t.Errorf("movement = %+v, want {30 0}", last.Movement)
	}
}
