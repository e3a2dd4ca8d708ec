package dome

import "testing"

func TestComputeRadiusAutoWide(t *testing.T) {
	o := Options{}.withDefaults()
	// 1280/720 is wide, so the width drives the radius.
	if got := computeRadius(1280, 720, o); got != 640 {
		t.Errorf("radius = %v, want 640", got)
	}
}

func TestComputeRadiusMinClamp(t *testing.T) {
	o := Options{}.withDefaults()
	if got := computeRadius(400, 800, o); got != 600 {
		t.Errorf("radius = %v, want MinRadius 600", got)
	}
}

func TestComputeRadiusHeightGuard(t *testing.T) {
	o := Options{}.withDefaults()
	// The minimum clamp would give 600, but the height guard caps at 300*1.35.
	if got := computeRadius(1000, 300, o); got != 405 {
		t.Errorf("radius = %v, want 405", got)
	}
}

func TestComputeRadiusBasis(t *testing.T) {
	o := Options{Fit: 1, MinRadius: 1, FitBasis: FitMax}.withDefaults()
	if got := computeRadius(800, 600, o); got != 800 {
		t.Errorf("FitMax = %v, want 800", got)
	}
	o.FitBasis = FitMin
	if got := computeRadius(800, 600, o); got != 600 {
		t.Errorf("FitMin = %v, want 600", got)
	}
	o.FitBasis = FitHeight
	if got := computeRadius(800, 600, o); got != 600 {
		t.Errorf("FitHeight = %v, want 600", got)
	}
	o.FitBasis = FitWidth
	o.MaxRadius = 500
	if got := computeRadius(800, 600, o); got != 500 {
		t.Errorf("FitWidth with MaxRadius = %v, want 500", got)
	}
}

func TestComputeViewerPad(t *testing.T) {
	o := Options{}.withDefaults()
	if got := computeViewerPad(1280, 720, o); got != 180 {
		t.Errorf("pad = %v, want 180", got)
	}
	if got := computeViewerPad(20, 10, o); got != minViewerPad {
		t.Errorf("pad = %v, want floor %v", got, minViewerPad)
	}
}

func TestMeasure(t *testing.T) {
	vp := Rect{X: 0, Y: 0, Width: 1280, Height: 720}
	m := measure(vp, Vec2{X: 1280, Y: 720}, Options{}.withDefaults())
	if m.Viewport != vp || m.Radius != 640 || m.ViewerPad != 180 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestRadiusSmootherFirstTargetSnaps(t *testing.T) {
	s := newRadiusSmoother()
	s.setTarget(640)
	if s.current != 640 || !s.settled() {
		t.Errorf("first target should snap, current = %v", s.current)
	}
	if s.step() {
		t.Error("settled smoother should not move")
	}
}

func TestRadiusSmootherConverges(t *testing.T) {
	s := newRadiusSmoother()
	s.setTarget(600)
	s.setTarget(700)

	moved := false
	for i := 0; i < 600 && !s.settled(); i++ {
		if s.step() {
			moved = true
		}
		if s.current > 700+radiusSnapDelta*4 {
			t.Fatalf("critically damped spring overshot: %v", s.current)
		}
	}
	if !moved {
		t.Error("smoother never moved")
	}
	if !s.settled() || s.current != 700 {
		t.Errorf("smoother did not settle on target, current = %v", s.current)
	}
}
