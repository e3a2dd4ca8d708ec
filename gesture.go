package dome

import (
	"math"
	"time"
)

const (
	moveThresholdSq    = 16 // squared px before a press counts as a real move
	tapThresholdMouse  = 6
	tapThresholdTouch  = 10
	tapWindow          = 300 * time.Millisecond
	tapAfterDragGuard  = 80 * time.Millisecond
	tapCancelHold      = 120 * time.Millisecond
	fallbackVelocity   = 0.02
	lowVelocity        = 0.001 // px/ms; below this the reported velocity is ignored
	inertiaMinVelocity = 0.005 // px/ms; above this a release starts inertia
	maxInertiaVelocity = 1.4
	inertiaScale       = 80
	inertiaDivisor     = 200
)

// DragStart describes a pointer press that may become a drag.
type DragStart struct {
	X, Y    float64
	Pointer PointerType
	// Target is the node under the pointer at press time, if any.
	Target *Node
}

// DragUpdate describes pointer motion or release. Velocity is in px/ms.
type DragUpdate struct {
	X, Y                 float64
	VelocityX, VelocityY float64
}

type dragState struct {
	active    bool
	startRot  Rotation
	startX    float64
	startY    float64
	moved     bool
	pointer   PointerType
	target    *Node
	startedAt time.Duration
}

type inertiaState struct {
	vx, vy    float64
	friction  float64
	stop      float64
	frames    int
	maxFrames int
}

// OnDragStart begins a drag. It is ignored while a tile is focused.
func (c *AnimationController) OnDragStart(ev DragStart) {
	if c.disposed || c.focus.phase != FocusClosed || c.focus.inFlight {
		return
	}
	c.stopInertia()
	c.drag = dragState{
		active:    true,
		startRot:  c.rotation,
		startX:    ev.X,
		startY:    ev.Y,
		pointer:   ev.Pointer,
		target:    ev.Target,
		startedAt: c.now,
	}
	c.gesture = GestureDragging
	if ev.Pointer == PointerTouch {
		c.scroll.Lock()
	}
}

// OnDragMove rotates the sphere to follow the pointer, relative to the
// rotation captured at drag start.
func (c *AnimationController) OnDragMove(ev DragUpdate) {
	if !c.drag.active {
		return
	}
	d := &c.drag
	dx, dy := ev.X-d.startX, ev.Y-d.startY
	if !d.moved && dx*dx+dy*dy > moveThresholdSq {
		d.moved = true
	}
	sens := c.opts.DragSensitivity
	c.setRotation(Rotation{
		X: c.clampPitch(d.startRot.X - dy/sens),
		Y: wrapAngleSigned(d.startRot.Y + dx/sens),
	})
}

// OnDragEnd releases the drag. A fast release starts inertia; a short
// stationary press opens the tile under the pointer.
func (c *AnimationController) OnDragEnd(ev DragUpdate) {
	if !c.drag.active {
		return
	}
	d := c.drag
	c.drag = dragState{}

	dx, dy := ev.X-d.startX, ev.Y-d.startY
	threshold := float64(tapThresholdMouse)
	if d.pointer == PointerTouch {
		threshold = tapThresholdTouch
	}
	tap := !d.moved &&
		math.Hypot(dx, dy) <= threshold &&
		c.now-d.startedAt <= tapWindow
	tapAllowed := c.now-c.lastDragEnd >= tapAfterDragGuard && c.now >= c.tapCancelledUntil

	vx, vy := ev.VelocityX, ev.VelocityY
	if !tap && math.Abs(vx) < lowVelocity && math.Abs(vy) < lowVelocity {
		sens := c.opts.DragSensitivity
		vx = dx / sens * fallbackVelocity
		vy = dy / sens * fallbackVelocity
	}
	if !tap && (math.Abs(vx) > inertiaMinVelocity || math.Abs(vy) > inertiaMinVelocity) {
		c.startInertia(vx, vy)
	} else {
		c.gesture = GestureIdle
	}

	if d.moved {
		c.lastDragEnd = c.now
		c.tapCancelledUntil = c.now + tapCancelHold
	}
	if d.pointer == PointerTouch {
		c.scroll.Unlock()
	}

	if tap && tapAllowed {
		idx := c.TileAt(ev.X, ev.Y)
		if d.target != nil && d.target.Kind == NodeTile {
			idx = d.target.TileIndex
		}
		if idx >= 0 {
			c.Open(idx)
		}
	}
}

// Dragging reports whether a drag is in progress.
func (c *AnimationController) Dragging() bool {
	return c.drag.active
}

func (c *AnimationController) startInertia(vx, vy float64) {
	d := c.opts.DragDampening
	c.inertia = inertiaState{
		vx:        clamp(vx, -maxInertiaVelocity, maxInertiaVelocity) * inertiaScale,
		vy:        clamp(vy, -maxInertiaVelocity, maxInertiaVelocity) * inertiaScale,
		friction:  0.94 + 0.055*d,
		stop:      0.015 - 0.01*d,
		maxFrames: int(math.Round(90 + 270*d)),
	}
	c.gesture = GestureInertia
}

// stepInertia runs one inertia frame.
func (c *AnimationController) stepInertia() {
	in := &c.inertia
	in.vx *= in.friction
	in.vy *= in.friction
	if math.Abs(in.vx) < in.stop && math.Abs(in.vy) < in.stop {
		c.stopInertia()
		return
	}
	in.frames++
	if in.frames > in.maxFrames {
		c.stopInertia()
		return
	}
	c.setRotation(Rotation{
		X: c.clampPitch(c.rotation.X - in.vy/inertiaDivisor),
		Y: wrapAngleSigned(c.rotation.Y + in.vx/inertiaDivisor),
	})
}

func (c *AnimationController) stopInertia() {
	if c.gesture == GestureInertia {
		c.gesture = GestureIdle
	}
	c.inertia = inertiaState{}
}
