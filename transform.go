package dome

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// tileInset is the gap, in pixels, between a tile's lattice slot and its image.
const tileInset = 10

// nearEpsilon rejects points at or behind the viewer plane.
const nearEpsilon = 1e-6

// Stage space has its origin at the viewport center with X right, Y down and
// Z toward the viewer, so rotation matrices read the same as CSS transforms.

// sphereMatrix is the global transform shared by every tile:
//
//	translateZ(-radius) rotateX(rot.X) rotateY(rot.Y)
func sphereMatrix(rot Rotation, radius float64) mgl64.Mat4 {
	return mgl64.Translate3D(0, 0, -radius).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rot.X))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rot.Y)))
}

// tileMatrix is a tile's static transform, independent of global rotation:
//
//	rotateY(ry) rotateX(rx) translateZ(radius)
func tileMatrix(t Tile, segments int, radius float64) mgl64.Mat4 {
	rx, ry := baseRotation(t, segments)
	return mgl64.HomogRotate3DY(mgl64.DegToRad(ry)).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rx))).
		Mul4(mgl64.Translate3D(0, 0, radius))
}

// tileSize returns the on-sphere width and height of a tile's image.
// One lattice unit pair spans π·r/segments pixels of arc.
func tileSize(t Tile, segments int, radius float64) (w, h float64) {
	item := math.Pi * radius / float64(segments)
	return item*float64(t.SizeX) - 2*tileInset, item*float64(t.SizeY) - 2*tileInset
}

func transformPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// projector maps stage space onto the screen with a perspective distance
// measured from the z=0 plane.
type projector struct {
	center      Vec2
	perspective float64
}

// project returns the screen position of v, or false when v is at or
// behind the viewer.
func (p projector) project(v mgl64.Vec3) (Vec2, bool) {
	d := p.perspective - v.Z()
	if d <= nearEpsilon {
		return Vec2{}, false
	}
	s := p.perspective / d
	return Vec2{X: p.center.X + v.X()*s, Y: p.center.Y + v.Y()*s}, true
}

// projectedQuad is a tile image projected to the screen.
// Corners run top-left, top-right, bottom-right, bottom-left.
type projectedQuad struct {
	corners [4]Vec2
	depth   float64 // stage Z of the quad center; larger is nearer
	facing  bool    // front face points toward the viewer
	ok      bool    // every corner is in front of the viewer
}

func (p projector) projectQuad(m mgl64.Mat4, w, h float64) projectedQuad {
	local := [4]mgl64.Vec3{
		{-w / 2, -h / 2, 0},
		{w / 2, -h / 2, 0},
		{w / 2, h / 2, 0},
		{-w / 2, h / 2, 0},
	}
	var q projectedQuad
	for i, l := range local {
		pt, ok := p.project(transformPoint(m, l))
		if !ok {
			return q
		}
		q.corners[i] = pt
	}
	q.ok = true

	center := transformPoint(m, mgl64.Vec3{})
	q.depth = center.Z()
	normal := m.Mul4x1(mgl64.Vec4{0, 0, 1, 0}).Vec3()
	toViewer := mgl64.Vec3{0, 0, p.perspective}.Sub(center)
	q.facing = normal.Dot(toViewer) > 0
	return q
}

// bounds returns the screen-space AABB of the quad.
func (q projectedQuad) bounds() Rect {
	minX, minY := q.corners[0].X, q.corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range q.corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (q projectedQuad) polygon() HitPolygon {
	return HitPolygon{Points: q.corners[:]}
}

// --- Screen-space rect transforms (overlay, closing node) ---

// applyRectTransform applies a top-left-origin translate and scale to r.
func applyRectTransform(r Rect, tx, ty, sx, sy float64) Rect {
	return Rect{X: r.X + tx, Y: r.Y + ty, Width: r.Width * sx, Height: r.Height * sy}
}

// rectTransformBetween returns the translate and scale that place layout
// rect base exactly over to.
func rectTransformBetween(base, to Rect) (tx, ty, sx, sy float64) {
	sx, sy = 1, 1
	if base.Width > 0 {
		sx = to.Width / base.Width
	}
	if base.Height > 0 {
		sy = to.Height / base.Height
	}
	return to.X - base.X, to.Y - base.Y, sx, sy
}
