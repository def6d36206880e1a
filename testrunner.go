package bramble

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

var keyNames = map[string]Key{
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
}

// TestRunner sequences injected key presses and screenshots across frames
// for automated play testing. Attach to an Engine via SetTestRunner.
//
// Script actions:
//
//	{"action": "hold", "keys": ["right", "up"], "frames": 30}
//	{"action": "wait", "frames": 10}
//	{"action": "screenshot", "label": "landed"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("bramble: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("bramble: parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "hold":
			for _, name := range st.Keys {
				if _, ok := keyNames[strings.ToLower(name)]; !ok {
					return nil, fmt.Errorf("bramble: parse test script: step %d: unknown key %q", i, name)
				}
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("bramble: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Step, before input is read.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether every step has been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Let held keys drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
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
	case "screenshot":
		e.Screenshot(st.Label)
	case "hold":
		keys := make([]Key, 0, len(st.Keys))
		for _, name := range st.Keys {
			keys = append(keys, keyNames[strings.ToLower(name)])
		}
		e.InjectKeys(st.Frames, keys...)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
