package gesture

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Fast   bool    `json:"fast,omitempty"`
	Fine   bool    `json:"fine,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events across frames for automated
// gesture testing. Attach to an InputSource via SetTestRunner.
//
// Supported actions: press, move, release, tap, drag, keydown, keyup, wait.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be attached to an InputSource via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the source. The runner's step method
// is called from Update before input processing each frame.
func (s *InputSource) SetTestRunner(runner *TestRunner) {
	s.script = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// scriptKey maps a script key name to a gesture key.
func scriptKey(name string) Key {
	switch name {
	case "left":
		return KeyArrowLeft
	case "right":
		return KeyArrowRight
	case "up":
		return KeyArrowUp
	case "down":
		return KeyArrowDown
	}
	return KeyNone
}

// step advances the test runner by one frame. Called from Update.
func (r *TestRunner) step(s *InputSource) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if s.PendingInjections() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "keydown":
		s.InjectKeyDown(scriptKey(st.Key), st.Fast, st.Fine)
	case "keyup":
		s.InjectKeyUp(scriptKey(st.Key))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames
		}
	}
}
