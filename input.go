package dome

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// velocitySmoothing weights the newest sample in the pointer velocity.
	velocitySmoothing = 0.8
	// velocityStale zeroes the release velocity when the pointer rested
	// this long before release.
	velocityStale = 100 * time.Millisecond
)

// HitPolygon is a convex polygon hit area in screen coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Pointer state ---

type pointerState struct {
	down    bool
	pointer PointerType
	touchID ebiten.TouchID
	// dismiss marks a press that landed while a tile was focused. It never
	// becomes a drag.
	dismiss bool
	lastX   float64
	lastY   float64
	lastAt  time.Duration
	vx, vy  float64 // px/ms, smoothed
}

// hitTest returns the topmost node under (x, y): the overlay while a tile is
// focused, otherwise the nearest tile.
func (g *Gallery) hitTest(x, y float64) *Node {
	if ov := g.ctrl.focus.overlay; ov != nil && ov.ScreenRect().Contains(x, y) {
		return ov
	}
	if g.ctrl.focus.backdrop != nil {
		return g.ctrl.focus.backdrop
	}
	return g.ctrl.TileNode(g.ctrl.TileAt(x, y))
}

// processInput is called from Gallery.Update to handle keyboard, mouse and
// touch input. Injected events take priority over real input.
func (g *Gallery) processInput() {
	if g.processInjectedInput() {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.handleKey(ebiten.KeyEscape)
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if g.pointer.down && g.pointer.pointer == PointerTouch {
		g.processTouch()
		return
	}
	if len(g.touchIDs) > 0 {
		g.processTouch()
		return
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.processPointer(float64(mx), float64(my), pressed, PointerMouse)
}

// processTouch follows the first touch of a gesture until it lifts.
func (g *Gallery) processTouch() {
	ps := &g.pointer
	if ps.down && ps.pointer == PointerTouch {
		for _, id := range g.touchIDs {
			if id == ps.touchID {
				tx, ty := ebiten.TouchPosition(id)
				g.processPointer(float64(tx), float64(ty), true, PointerTouch)
				return
			}
		}
		g.processPointer(ps.lastX, ps.lastY, false, PointerTouch)
		return
	}
	id := g.touchIDs[0]
	ps.touchID = id
	tx, ty := ebiten.TouchPosition(id)
	g.processPointer(float64(tx), float64(ty), true, PointerTouch)
}

func (g *Gallery) handleKey(k ebiten.Key) {
	if k == ebiten.KeyEscape {
		g.ctrl.Close()
	}
}

// processPointer runs the pointer state machine for the single tracked pointer.
func (g *Gallery) processPointer(x, y float64, pressed bool, pt PointerType) {
	ps := &g.pointer
	now := g.ctrl.Now()

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.pointer = pt
		ps.lastX, ps.lastY, ps.lastAt = x, y, now
		ps.vx, ps.vy = 0, 0
		ps.dismiss = g.ctrl.FocusPhase() != FocusClosed
		if ps.dismiss {
			if target := g.hitTest(x, y); target == nil || target.Kind != NodeOverlay {
				g.ctrl.Close()
			}
			return
		}
		g.ctrl.OnDragStart(DragStart{X: x, Y: y, Pointer: pt, Target: g.hitTest(x, y)})

	case pressed && ps.down:
		if ps.dismiss || (x == ps.lastX && y == ps.lastY) {
			return
		}
		if dt := float64(now-ps.lastAt) / float64(time.Millisecond); dt > 0 {
			ps.vx = velocitySmoothing*(x-ps.lastX)/dt + (1-velocitySmoothing)*ps.vx
			ps.vy = velocitySmoothing*(y-ps.lastY)/dt + (1-velocitySmoothing)*ps.vy
		}
		ps.lastX, ps.lastY, ps.lastAt = x, y, now
		g.ctrl.OnDragMove(DragUpdate{X: x, Y: y, VelocityX: ps.vx, VelocityY: ps.vy})

	case !pressed && ps.down:
		vx, vy := ps.vx, ps.vy
		if now-ps.lastAt > velocityStale {
			vx, vy = 0, 0
		}
		dismiss := ps.dismiss
		*ps = pointerState{lastX: x, lastY: y}
		if dismiss {
			return
		}
		g.ctrl.OnDragEnd(DragUpdate{X: x, Y: y, VelocityX: vx, VelocityY: vy})
	}
}
