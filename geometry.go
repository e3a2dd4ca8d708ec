package dome

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// normalizeAngle maps d into [0, 360).
func normalizeAngle(d float64) float64 {
	a := math.Mod(d, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// wrapAngleSigned maps deg into (-180, 180].
func wrapAngleSigned(deg float64) float64 {
	a := normalizeAngle(deg+180) - 180
	if a <= -180 {
		a += 360
	}
	return a
}

// angleUnit is the angular pitch, in degrees, of one lattice unit.
// Tiles span two units, so a sphere of n segments carries n columns.
func angleUnit(segments int) float64 {
	return 360 / float64(segments) / 2
}

// baseRotation returns the static pitch (rx) and yaw (ry) of a tile on the
// sphere, in degrees. It depends only on the tile's lattice slot.
func baseRotation(t Tile, segments int) (rx, ry float64) {
	unit := angleUnit(segments)
	ry = unit * (float64(t.OffsetX) + float64(t.SizeX-1)/2)
	rx = unit * (float64(t.OffsetY) - float64(t.SizeY-1)/2)
	return rx, ry
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
