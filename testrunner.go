package thicket

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSteps is returned by LoadTestScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action  string   `json:"action"`
	X       float64  `json:"x,omitempty"`
	Y       float64  `json:"y,omitempty"`
	FromX   float64  `json:"fromX,omitempty"`
	FromY   float64  `json:"fromY,omitempty"`
	ToX     float64  `json:"toX,omitempty"`
	ToY     float64  `json:"toY,omitempty"`
	Frames  int      `json:"frames,omitempty"`
	Key     string   `json:"key,omitempty"`
	Mods    []string `json:"mods,omitempty"`
	Forward bool     `json:"forward,omitempty"`

	key  Key
	mods []Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events across frames for automated
// interaction testing. Attach to a Window via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Window via SetTestRunner. Supported actions are click,
// drag, key, wheel, wait and clear.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrNoSteps)
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "click", "drag", "wheel", "wait", "clear":
		case "key":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			st.key = k
			for _, name := range st.Mods {
				m, err := ParseKey(name)
				if err != nil {
					return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
				}
				if !m.IsModifier() {
					return nil, fmt.Errorf("parse test script: step %d: %q is not a modifier", i, name)
				}
				st.mods = append(st.mods, m)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the window. The runner's step method
// is called from Window.Update before injected input is processed.
func (w *Window) SetTestRunner(runner *TestRunner) {
	w.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Window.Update.
func (r *TestRunner) step(w *Window) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(w.injectQueue) > 0 {
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
	case "click":
		w.InjectClick(st.X, st.Y)
	case "drag":
		w.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		w.InjectKey(st.key, st.mods...)
	case "wheel":
		w.InjectWheel(st.Forward)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "clear":
		w.Clear()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(w.injectQueue) == 0 {
		r.done = true
	}
}
