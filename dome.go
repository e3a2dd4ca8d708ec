package dome

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Vec2 is a 2D vector used for screen positions, sizes and velocities.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in screen pixels. The origin is the
// top-left corner, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// centered returns a w×h rectangle sharing r's center.
func (r Rect) centered(w, h float64) Rect {
	c := r.Center()
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// toRGBA converts to a premultiplied color.RGBA for image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// Rotation is the shared orientation of the sphere in degrees.
// X is pitch, clamped to ±MaxVerticalRotationDeg. Y is yaw, kept in (-180, 180].
type Rotation struct {
	X, Y float64
}

// GestureState is the state of the drag/inertia machine.
type GestureState uint8

const (
	GestureIdle     GestureState = iota // no pointer interaction, no motion
	GestureDragging                     // pointer held, rotation follows it
	GestureInertia                      // released with velocity, decaying
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GestureInertia:
		return "inertia"
	}
	return "unknown"
}

// FocusPhase is the state of the open/close machine for the focused tile.
type FocusPhase uint8

const (
	FocusClosed  FocusPhase = iota // no tile focused
	FocusOpening                   // overlay animating from tile to target
	FocusOpen                      // overlay resting at its target rect
	FocusClosing                   // overlay returning to the tile, then tile fade-in
)

func (p FocusPhase) String() string {
	switch p {
	case FocusClosed:
		return "closed"
	case FocusOpening:
		return "opening"
	case FocusOpen:
		return "open"
	case FocusClosing:
		return "closing"
	}
	return "unknown"
}

// PointerType distinguishes mouse from touch input. Touch gestures use a
// larger tap tolerance and hold the scroll lock for their duration.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
)
