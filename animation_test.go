package dome

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenRectReachesTarget(t *testing.T) {
	node := NewNode("overlay", NodeOverlay)
	node.TX, node.TY = 50, 60
	node.SX, node.SY = 0.25, 0.5

	g := TweenRect(node, 0, 0, 1, 1, 0.5, time.Second, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if math.Abs(node.Progress-0.5) > 0.01 {
		t.Errorf("Progress = %f, want ~0.5", node.Progress)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	for name, got := range map[string]float64{
		"TX": node.TX, "TY": node.TY, "SX": node.SX - 1, "SY": node.SY - 1,
		"Alpha": node.Alpha - 0.5, "Progress": node.Progress - 1,
	} {
		if math.Abs(got) > 0.01 {
			t.Errorf("%s off by %f", name, got)
		}
	}
}

func TestTweenRectResetsProgress(t *testing.T) {
	node := NewNode("closing", NodeClosing)
	node.Progress = 1
	TweenRect(node, 0, 0, 1, 1, 1, time.Second, ease.Linear)
	if node.Progress != 0 {
		t.Errorf("Progress = %f, want 0 at start", node.Progress)
	}
}

func TestTweenDelayCarriesOver(t *testing.T) {
	node := NewNode("overlay", NodeOverlay)
	g := TweenRect(node, 100, 0, 1, 1, 1, time.Second, ease.Linear)
	g.Delay = 0.5

	g.Update(0.25)
	if node.TX != 0 {
		t.Errorf("TX = %f during delay, want 0", node.TX)
	}
	// 0.25 of this step finishes the delay; the rest advances the tween.
	g.Update(0.5)
	if math.Abs(node.TX-25) > 0.01 {
		t.Errorf("TX = %f, want ~25", node.TX)
	}
}

func TestTweenOnDoneRunsOnce(t *testing.T) {
	node := NewNode("tile", NodeTile)
	node.Alpha = 0
	calls := 0
	updates := 0
	g := TweenAlpha(node, 1, 250*time.Millisecond, ease.Linear)
	g.OnDone = func() { calls++ }
	g.OnUpdate = func() { updates++ }

	for i := 0; i < 10; i++ {
		g.Update(0.125)
	}
	if calls != 1 {
		t.Errorf("OnDone ran %d times, want 1", calls)
	}
	if updates != 2 {
		t.Errorf("OnUpdate ran %d times, want 2", updates)
	}
	if math.Abs(node.Alpha-1) > 0.01 {
		t.Errorf("Alpha = %f, want ~1", node.Alpha)
	}
}

func TestTweenCancelSkipsOnDone(t *testing.T) {
	node := NewNode("tile", NodeTile)
	called := false
	g := TweenAlpha(node, 0, time.Second, ease.Linear)
	g.OnDone = func() { called = true }

	g.Update(0.25)
	g.Cancel()
	g.Update(1)
	if called {
		t.Error("OnDone should not run after Cancel")
	}
	if math.Abs(node.Alpha-0.75) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.75 where it was cancelled", node.Alpha)
	}
}

func TestTweenStopsOnDisposedTarget(t *testing.T) {
	node := NewNode("overlay", NodeOverlay)
	called := false
	g := TweenAlpha(node, 0, time.Second, ease.Linear)
	g.OnDone = func() { called = true }

	node.Dispose()
	g.Update(2)
	if !g.Done {
		t.Error("expected Done after target disposal")
	}
	if called {
		t.Error("OnDone should not run for a disposed target")
	}
}

func TestSeconds(t *testing.T) {
	if got := seconds(1500 * time.Millisecond); got != 1.5 {
		t.Errorf("seconds = %v, want 1.5", got)
	}
}
