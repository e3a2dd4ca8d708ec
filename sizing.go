package dome

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	autoWideAspect  = 1.3  // FitAuto uses the width at or above this aspect
	heightGuard     = 1.35 // radius never exceeds height × this
	minViewerPad    = 8
	radiusSnapDelta = 0.5
)

// Metrics is the sizing derived from one container observation.
type Metrics struct {
	Viewport  Rect    // container rect in screen pixels
	Screen    Vec2    // full screen size, used for vw/vh lengths
	Radius    float64 // target sphere radius
	ViewerPad float64 // padding kept around the focused overlay
}

// computeRadius derives the sphere radius for a w×h container.
func computeRadius(w, h float64, o Options) float64 {
	minDim, maxDim := math.Min(w, h), math.Max(w, h)
	var basis float64
	switch o.FitBasis {
	case FitMin:
		basis = minDim
	case FitMax:
		basis = maxDim
	case FitWidth:
		basis = w
	case FitHeight:
		basis = h
	default:
		if h > 0 && w/h >= autoWideAspect {
			basis = w
		} else {
			basis = minDim
		}
	}
	hi := math.Inf(1)
	if o.MaxRadius > 0 {
		hi = o.MaxRadius
	}
	r := clamp(basis*o.Fit, o.MinRadius, hi)
	r = math.Min(r, h*heightGuard)
	return math.Round(r)
}

// computeViewerPad returns the padding kept around the focused overlay.
func computeViewerPad(w, h float64, o Options) float64 {
	return math.Max(minViewerPad, math.Round(math.Min(w, h)*o.PadFactor))
}

// measure returns the metrics for a container observation.
func measure(viewport Rect, screen Vec2, o Options) Metrics {
	return Metrics{
		Viewport:  viewport,
		Screen:    screen,
		Radius:    computeRadius(viewport.Width, viewport.Height, o),
		ViewerPad: computeViewerPad(viewport.Width, viewport.Height, o),
	}
}

// radiusSmoother eases the live radius toward the latest target with a
// critically damped spring. The first target snaps.
type radiusSmoother struct {
	spring  harmonica.Spring
	current float64
	vel     float64
	target  float64
	primed  bool
}

func newRadiusSmoother() radiusSmoother {
	return radiusSmoother{spring: harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0)}
}

func (s *radiusSmoother) setTarget(r float64) {
	s.target = r
	if !s.primed {
		s.primed = true
		s.current = r
		s.vel = 0
	}
}

// step advances the spring one frame and reports whether the radius moved.
func (s *radiusSmoother) step() bool {
	if !s.primed || (s.current == s.target && s.vel == 0) {
		return false
	}
	s.current, s.vel = s.spring.Update(s.current, s.vel, s.target)
	if math.Abs(s.current-s.target) < radiusSnapDelta && math.Abs(s.vel) < radiusSnapDelta {
		s.current, s.vel = s.target, 0
	}
	return true
}

func (s *radiusSmoother) settled() bool {
	return s.current == s.target && s.vel == 0
}
