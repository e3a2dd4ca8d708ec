package dome

import (
	"fmt"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "tap", "x": 100, "y": 200, "touch": true},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "Escape"},
			{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 6}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[1]; st.Action != "tap" || st.X != 100 || st.Y != 200 || !st.Touch {
		t.Errorf("step 1 = %+v", st)
	}
	if st := runner.steps[3]; st.Key != "Escape" {
		t.Errorf("step 3 = %+v", st)
	}
	if st := runner.steps[4]; st.FromY != 2 || st.ToX != 3 || st.Frames != 6 {
		t.Errorf("step 4 = %+v", st)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `not json`,
		"empty":          `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "hover"}]}`,
		"unknown key":    `{"steps": [{"action": "key", "key": "space"}]}`,
	}
	for name, data := range tests {
		if _, err := LoadTestScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseKey(t *testing.T) {
	for _, name := range []string{"escape", "ESC", "Escape"} {
		k, err := parseKey(name)
		if err != nil || k != ebiten.KeyEscape {
			t.Errorf("parseKey(%q) = %v, %v", name, k, err)
		}
	}
}

func TestRunnerStep_Tap(t *testing.T) {
	g := newTestGallery(t, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "tap", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	g.SetTestRunner(runner)

	runner.step(g)
	if len(g.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(g.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	g.processInput()
	g.processInput()

	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_TouchTap(t *testing.T) {
	g := newTestGallery(t, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "tap", "x": 5, "y": 5, "touch": true}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(g)
	if len(g.injectQueue) != 2 || g.injectQueue[0].pointer != PointerTouch {
		t.Errorf("queue = %+v", g.injectQueue)
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	g := newTestGallery(t, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1 runs the wait; frames 2 and 3 count it down.
	for i := 0; i < 3; i++ {
		runner.step(g)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i+1)
		}
	}

	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", g.screenshotQueue)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	g := newTestGallery(t, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(g)
	if len(g.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", len(g.injectQueue))
	}
}

func TestRunnerStep_Key(t *testing.T) {
	g := newTestGallery(t, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "esc"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(g)
	if len(g.injectQueue) != 1 || !g.injectQueue[0].isKey {
		t.Errorf("queue = %+v", g.injectQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	g := newTestGallery(t, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(g)
	runner.step(g)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	g.injectQueue = g.injectQueue[:0]
	runner.step(g)
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", g.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

// A scripted open/close cycle, driven frame by frame the way Update does.
func TestRunnerOpenCloseScript(t *testing.T) {
	g := newTestGallery(t, Options{})
	p := tileCenter(t, g, frontTile(g.ctrl))
	script := fmt.Sprintf(`{"steps": [
		{"action": "tap", "x": %g, "y": %g},
		{"action": "wait", "frames": 40},
		{"action": "key", "key": "escape"},
		{"action": "wait", "frames": 60}
	]}`, p.X, p.Y)
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	g.SetTestRunner(runner)

	opened := false
	for i := 0; i < 400 && !runner.Done(); i++ {
		runner.step(g)
		if len(g.injectQueue) > 0 {
			g.processInput()
		}
		g.ctrl.Tick(frame)
		if g.ctrl.FocusPhase() == FocusOpen {
			opened = true
		}
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if !opened {
		t.Error("tap should have opened the tile")
	}
	if g.ctrl.FocusPhase() != FocusClosed {
		t.Errorf("phase = %v, want closed after escape", g.ctrl.FocusPhase())
	}
	if g.ctrl.Now() < time.Second {
		t.Errorf("clock = %v, expected the waits to elapse", g.ctrl.Now())
	}
}
