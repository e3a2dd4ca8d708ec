package dome

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FitBasis selects which container dimension the sphere radius scales from.
type FitBasis uint8

const (
	FitAuto   FitBasis = iota // width when aspect >= 1.3, else the smaller dimension
	FitMin                    // smaller dimension
	FitMax                    // larger dimension
	FitWidth                  // container width
	FitHeight                 // container height
)

// ParseFitBasis maps "auto", "min", "max", "width" or "height" to a FitBasis.
func ParseFitBasis(s string) (FitBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FitAuto, nil
	case "min":
		return FitMin, nil
	case "max":
		return FitMax, nil
	case "width":
		return FitWidth, nil
	case "height":
		return FitHeight, nil
	}
	return FitAuto, fmt.Errorf("unknown fit basis %q", s)
}

// Default option values. Zero-valued Options fields take these.
const (
	DefaultFit                    = 0.5
	DefaultMinRadius              = 600
	DefaultPadFactor              = 0.25
	DefaultMaxVerticalRotationDeg = 5
	DefaultDragSensitivity        = 20
	DefaultDragDampening          = 1
	DefaultOpenedMaxDimension     = 720
	DefaultEnlargeTransition      = 300 * time.Millisecond
	DefaultTileFade               = 300 * time.Millisecond
	DefaultTileTextureSize        = 512
)

// Options configures a gallery. The zero value is usable: every zero field
// takes its documented default.
type Options struct {
	// Images is the tile pool.
	Images []ImageItem

	// Fit scales the radius basis. Default 0.5.
	Fit float64
	// FitBasis picks the container dimension the radius scales from.
	FitBasis FitBasis
	// MinRadius and MaxRadius bound the sphere radius in pixels.
	// MaxRadius 0 means unbounded. MinRadius defaults to 600.
	MinRadius float64
	MaxRadius float64
	// PadFactor sizes the viewer padding from the smaller container dimension.
	PadFactor float64

	// Segments is the lattice column count. Total tiles = Segments × 5.
	Segments int

	// MaxVerticalRotationDeg clamps pitch. Negative locks pitch at 0.
	MaxVerticalRotationDeg float64
	// DragSensitivity is the pixels-per-degree divisor applied while dragging.
	DragSensitivity float64
	// DragDampening in [0, 1] lengthens inertia as it grows. Zero selects
	// the default; a negative value means no dampening.
	DragDampening float64

	// EnlargeTransition is the open/close animation duration.
	EnlargeTransition time.Duration
	// TileFade is the duration of the tile fade-in after a close.
	TileFade time.Duration

	// OpenedImageWidth and OpenedImageHeight size the focused overlay on
	// mobile. Defaults 90vw × 70vh.
	OpenedImageWidth  Length
	OpenedImageHeight Length
	// OpenedMaxDimension caps the longer side of the focused overlay on
	// desktop, where the overlay keeps the image's natural aspect ratio.
	OpenedMaxDimension float64
	// ImageBorderRadius rounds the tiles; OpenedImageBorderRadius rounds the
	// focused overlay. Both default to 30px when unset; Px(0) gives square
	// corners.
	ImageBorderRadius       Length
	OpenedImageBorderRadius Length

	// Grayscale desaturates every tile and the overlay.
	Grayscale bool
	// IsMobile switches to viewport-relative overlay sizing, an opaque
	// backdrop and screen-fixed overlay placement.
	IsMobile bool
	// OverlayColor colors the backdrop behind the focused overlay.
	OverlayColor Color

	// TileTextureSize is the longer side, in pixels, of tile thumbnails.
	TileTextureSize int

	// Warn receives configuration warnings. Defaults to stderr.
	Warn WarnFunc
	// Events receives open/close/warning notifications. Optional.
	Events EventSink
	// ScrollHost is the embedding page whose scrolling is suspended while a
	// tile is focused. Optional.
	ScrollHost ScrollHost
}

// withDefaults returns a copy with zero fields replaced by defaults and
// out-of-range fields clamped.
func (o Options) withDefaults() Options {
	if o.Fit <= 0 {
		o.Fit = DefaultFit
	}
	if o.MinRadius <= 0 {
		o.MinRadius = DefaultMinRadius
	}
	if o.MaxRadius < 0 {
		o.MaxRadius = 0
	}
	if o.PadFactor <= 0 {
		o.PadFactor = DefaultPadFactor
	}
	if o.Segments <= 0 {
		o.Segments = DefaultSegments
	}
	switch {
	case o.MaxVerticalRotationDeg == 0:
		o.MaxVerticalRotationDeg = DefaultMaxVerticalRotationDeg
	case o.MaxVerticalRotationDeg < 0:
		o.MaxVerticalRotationDeg = 0
	}
	if o.DragSensitivity <= 0 {
		o.DragSensitivity = DefaultDragSensitivity
	}
	switch {
	case o.DragDampening == 0:
		o.DragDampening = DefaultDragDampening
	default:
		o.DragDampening = clamp(o.DragDampening, 0, 1)
	}
	if o.EnlargeTransition <= 0 {
		o.EnlargeTransition = DefaultEnlargeTransition
	}
	if o.TileFade <= 0 {
		o.TileFade = DefaultTileFade
	}
	if o.OpenedImageWidth.IsZero() {
		o.OpenedImageWidth = VW(90)
	}
	if o.OpenedImageHeight.IsZero() {
		o.OpenedImageHeight = VH(70)
	}
	if o.OpenedMaxDimension <= 0 {
		o.OpenedMaxDimension = DefaultOpenedMaxDimension
	}
	if o.ImageBorderRadius.IsZero() {
		o.ImageBorderRadius = Px(30)
	}
	if o.OpenedImageBorderRadius.IsZero() {
		o.OpenedImageBorderRadius = Px(30)
	}
	if o.OverlayColor == (Color{}) {
		o.OverlayColor = Color{R: 6.0 / 255, G: 0, B: 16.0 / 255, A: 1}
	}
	if o.TileTextureSize <= 0 {
		o.TileTextureSize = DefaultTileTextureSize
	}
	if o.Warn == nil {
		o.Warn = stderrWarn
	}
	return o
}

// Validate reports option values that withDefaults would silently rewrite.
// Galleries never require it; it exists for callers loading options from
// user-supplied configuration.
func (o Options) Validate() error {
	var errs []error
	if o.Segments < 0 {
		errs = append(errs, fmt.Errorf("segments must be positive, got %d", o.Segments))
	}
	if o.Fit < 0 {
		errs = append(errs, fmt.Errorf("fit must be positive, got %g", o.Fit))
	}
	if o.MaxRadius > 0 && o.MinRadius > o.MaxRadius {
		errs = append(errs, fmt.Errorf("min radius %g exceeds max radius %g", o.MinRadius, o.MaxRadius))
	}
	if o.DragDampening > 1 {
		errs = append(errs, fmt.Errorf("drag dampening must be within [0, 1], got %g", o.DragDampening))
	}
	if o.DragSensitivity < 0 {
		errs = append(errs, fmt.Errorf("drag sensitivity must be positive, got %g", o.DragSensitivity))
	}
	return errors.Join(errs...)
}
