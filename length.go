package dome

import (
	"fmt"
	"strconv"
	"strings"
)

// LengthUnit selects how a Length resolves to pixels.
type LengthUnit uint8

const (
	UnitUnset LengthUnit = iota // not set; Options fills in a default
	UnitPx                      // absolute pixels
	UnitVW                   // percent of the screen width
	UnitVH                   // percent of the screen height
)

// Length is a CSS-like size used for overlay sizing and corner radii.
// The zero value is unset, which is distinct from Px(0).
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Px returns an absolute pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// VW returns a length of v percent of the screen width.
func VW(v float64) Length { return Length{Value: v, Unit: UnitVW} }

// VH returns a length of v percent of the screen height.
func VH(v float64) Length { return Length{Value: v, Unit: UnitVH} }

// ParseLength parses "400px", "400", "90vw" or "70vh".
func ParseLength(s string) (Length, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	unit := UnitPx
	switch {
	case strings.HasSuffix(t, "px"):
		t = strings.TrimSuffix(t, "px")
	case strings.HasSuffix(t, "vw"):
		t, unit = strings.TrimSuffix(t, "vw"), UnitVW
	case strings.HasSuffix(t, "vh"):
		t, unit = strings.TrimSuffix(t, "vh"), UnitVH
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", s, err)
	}
	if v < 0 {
		return Length{}, fmt.Errorf("parse length %q: negative value", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Resolve converts the length to pixels against the given screen size.
func (l Length) Resolve(screen Vec2) float64 {
	switch l.Unit {
	case UnitVW:
		return l.Value / 100 * screen.X
	case UnitVH:
		return l.Value / 100 * screen.Y
	default:
		return l.Value
	}
}

// IsZero reports whether the length is unset. Px(0) is set.
func (l Length) IsZero() bool {
	return l.Unit == UnitUnset
}

func (l Length) String() string {
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	switch l.Unit {
	case UnitVW:
		return v + "vw"
	case UnitVH:
		return v + "vh"
	case UnitUnset:
		return "unset"
	default:
		return v + "px"
	}
}
