package dome

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Touch  bool    `json:"touch,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and screenshots across frames for
// automated visual checks. Attach to a Gallery via SetTestRunner.
//
// Supported actions: "tap" (alias "click"), "drag", "wait", "key" and
// "screenshot".
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Gallery via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "click", "drag", "wait", "screenshot":
		case "key":
			if _, err := parseKey(st.Key); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// parseKey maps a script key name to an ebiten key. Only keys the gallery
// reacts to are accepted.
func parseKey(name string) (ebiten.Key, error) {
	switch strings.ToLower(name) {
	case "escape", "esc":
		return ebiten.KeyEscape, nil
	}
	return 0, fmt.Errorf("unsupported key %q", name)
}

// SetTestRunner attaches a TestRunner to the gallery. The runner's step
// method is called from Gallery.Update before input each frame.
func (g *Gallery) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Gallery.Update.
func (r *TestRunner) step(g *Gallery) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
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
		g.Screenshot(st.Label)
	case "tap", "click":
		if st.Touch {
			g.InjectTouchDrag(st.X, st.Y, st.X, st.Y, 2)
		} else {
			g.InjectClick(st.X, st.Y)
		}
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		if st.Touch {
			g.InjectTouchDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
		} else {
			g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
		}
	case "key":
		if k, err := parseKey(st.Key); err == nil {
			g.InjectKey(k)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
