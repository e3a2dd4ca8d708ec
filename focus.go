package dome

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	// reentryGuard drops open requests right after a close and vice versa.
	reentryGuard = 250 * time.Millisecond
	// overlayStartDelay gives the overlay one frame at the tile rect before
	// the enlarge tween starts.
	overlayStartDelay = 16 * time.Millisecond
)

type focusState struct {
	phase    FocusPhase
	inFlight bool
	index    int
	// tileRect is the tile's screen rect measured at open time.
	tileRect Rect

	overlay  *Node
	backdrop *Node
	closing  *Node
	// reference exists only while a tile is being measured.
	reference *Node

	tween    *TweenGroup
	openedAt time.Duration
	closedAt time.Duration
}

func (f *focusState) reset() {
	*f = focusState{index: -1, openedAt: never, closedAt: never}
}

// Open focuses tile i: the tile hides and an overlay enlarges from its rect
// to the viewer. It reports whether the request was accepted. Requests are
// dropped while another focus transition is in flight, within 250ms of the
// last close, or when the tile cannot be measured.
func (c *AnimationController) Open(i int) bool {
	if c.disposed || i < 0 || i >= len(c.tileNodes) {
		return false
	}
	f := &c.focus
	if f.inFlight || f.phase != FocusClosed || c.drag.active {
		return false
	}
	if c.now-f.closedAt < reentryGuard {
		return false
	}

	f.inFlight = true
	f.index = i
	c.stopInertia()
	c.scroll.Lock()
	c.scroll.SetEnlarging(true)
	c.frames.flush()

	tileRect, ok := c.measureTile(i)
	if !ok || c.metrics.Viewport.Empty() {
		c.abortOpen()
		return false
	}
	target := c.targetRect(i)
	if target.Empty() {
		c.abortOpen()
		return false
	}

	tile := c.tileNodes[i]
	tile.Visible = false

	screen := c.metrics.Screen
	backdrop := NewNode("backdrop", NodeBackdrop)
	backdrop.Color = c.opts.OverlayColor
	if c.opts.IsMobile {
		backdrop.Rect = Rect{Width: screen.X, Height: screen.Y}
		backdrop.Alpha = 1
	} else {
		backdrop.Rect = c.metrics.Viewport
		backdrop.Alpha = 0
	}

	item := c.tiles[i].Item()
	overlay := NewNode("overlay", NodeOverlay)
	overlay.TileIndex = i
	overlay.Src = item.DisplaySrc()
	overlay.Rect = target
	overlay.TX, overlay.TY, overlay.SX, overlay.SY = rectTransformBetween(target, tileRect)
	overlay.Alpha = 0

	tileR := c.opts.ImageBorderRadius.Resolve(screen)
	openedR := c.opts.OpenedImageBorderRadius.Resolve(screen)
	overlay.Radius = compensatedRadius(tileR, overlay.SX)

	c.layer.AddChild(backdrop)
	c.layer.AddChild(overlay)

	tw := TweenRect(overlay, 0, 0, 1, 1, 1, c.opts.EnlargeTransition, enlargeEase)
	tw.Delay = seconds(overlayStartDelay)
	tw.OnUpdate = func() {
		overlay.Radius = compensatedRadius(lerp(tileR, openedR, overlay.Progress), overlay.SX)
	}
	tw.OnDone = func() {
		f.phase = FocusOpen
		f.tween = nil
		c.emitTile(EventTileOpened, i)
	}

	f.phase = FocusOpening
	f.tileRect = tileRect
	f.overlay = overlay
	f.backdrop = backdrop
	f.tween = tw
	f.openedAt = c.now
	c.addTween(tw)
	c.emitTile(EventTileOpen, i)
	return true
}

// Close returns the focused overlay to its tile. It reports whether the
// request was accepted. Requests are dropped when nothing is open or within
// 250ms of the open.
func (c *AnimationController) Close() bool {
	f := &c.focus
	if c.disposed || f.overlay == nil {
		return false
	}
	if f.phase != FocusOpening && f.phase != FocusOpen {
		return false
	}
	if c.now-f.openedAt < reentryGuard {
		return false
	}

	ov := f.overlay
	if f.tween != nil {
		f.tween.Cancel()
		f.tween = nil
	}
	from := ov.ScreenRect()
	openedR := ov.ScreenRadius()
	tileR := c.opts.ImageBorderRadius.Resolve(c.metrics.Screen)

	closing := NewNode("closing", NodeClosing)
	closing.TileIndex = ov.TileIndex
	closing.Src = ov.Src
	closing.Image = ov.Image
	closing.Rect = from
	closing.Alpha = ov.Alpha
	closing.Radius = openedR

	ov.Dispose()
	f.backdrop.Dispose()
	f.overlay, f.backdrop = nil, nil
	c.layer.AddChild(closing)
	f.closing = closing

	tx, ty, sx, sy := rectTransformBetween(from, f.tileRect)
	tw := TweenRect(closing, tx, ty, sx, sy, 0, c.opts.EnlargeTransition, enlargeEase)
	tw.OnUpdate = func() {
		closing.Radius = compensatedRadius(lerp(openedR, tileR, closing.Progress), closing.SX)
	}
	tw.OnDone = c.finishClose

	f.phase = FocusClosing
	f.tween = tw
	f.closedAt = c.now
	c.addTween(tw)
	c.emitTile(EventTileClose, f.index)
	return true
}

// finishClose swaps the closing node back for the tile and fades it in.
func (c *AnimationController) finishClose() {
	f := &c.focus
	if f.closing != nil {
		f.closing.Dispose()
		f.closing = nil
	}
	i := f.index
	tile := c.TileNode(i)
	if tile == nil {
		c.releaseFocus()
		return
	}
	tile.Visible = true
	tile.Alpha = 0
	fade := TweenAlpha(tile, 1, c.opts.TileFade, ease.Linear)
	fade.OnDone = c.releaseFocus
	f.tween = fade
	c.addTween(fade)
}

func (c *AnimationController) releaseFocus() {
	i := c.focus.index
	c.focus.reset()
	c.focus.closedAt = c.now
	c.scroll.SetEnlarging(false)
	if !c.drag.active {
		c.scroll.Unlock()
	}
	c.emitTile(EventTileClosed, i)
}

// abortOpen rolls back a failed open without surfacing an error.
func (c *AnimationController) abortOpen() {
	f := &c.focus
	if f.reference != nil {
		f.reference.Dispose()
	}
	if n := c.TileNode(f.index); n != nil {
		n.Visible = true
		n.Alpha = 1
	}
	closedAt := f.closedAt
	f.reset()
	f.closedAt = closedAt
	c.scroll.SetEnlarging(false)
	c.scroll.Unlock()
}

// resetFocus drops any focus state immediately, restoring the tile.
func (c *AnimationController) resetFocus() {
	f := &c.focus
	if f.tween != nil {
		f.tween.Cancel()
	}
	for _, n := range []*Node{f.overlay, f.backdrop, f.closing, f.reference} {
		if n != nil {
			n.Dispose()
		}
	}
	if n := c.TileNode(f.index); n != nil {
		n.Visible = true
		n.Alpha = 1
	}
	wasActive := f.phase != FocusClosed || f.inFlight
	f.reset()
	if wasActive {
		c.scroll.SetEnlarging(false)
		c.scroll.Unlock()
	}
}

// measureTile returns tile i's current screen rect. A transient reference
// node carrying the tile's static transform is placed under the sphere, so
// the measurement includes the live rotation.
func (c *AnimationController) measureTile(i int) (Rect, bool) {
	tile := c.tileNodes[i]
	if c.liveRadius <= 0 || tile.Width <= 0 || tile.Height <= 0 {
		return Rect{}, false
	}
	ref := NewNode("reference", NodeReference)
	ref.Local = tile.Local
	ref.Width, ref.Height = tile.Width, tile.Height
	ref.Visible = false
	c.sphere.AddChild(ref)
	c.focus.reference = ref
	defer func() {
		ref.Dispose()
		c.focus.reference = nil
	}()

	q := c.projector().projectQuad(ref.WorldMatrix(), ref.Width, ref.Height)
	if !q.ok || !q.facing {
		return Rect{}, false
	}
	r := q.bounds()
	if r.Empty() {
		return Rect{}, false
	}
	return r, true
}

// targetRect returns the rect the focused overlay rests at. On desktop the
// image keeps its natural aspect with the longer side capped; on mobile it
// takes the configured viewport lengths and centers on the screen.
func (c *AnimationController) targetRect(i int) Rect {
	screen := c.metrics.Screen
	if c.opts.IsMobile {
		w := c.opts.OpenedImageWidth.Resolve(screen)
		h := c.opts.OpenedImageHeight.Resolve(screen)
		return Rect{Width: screen.X, Height: screen.Y}.centered(w, h)
	}

	vp := c.metrics.Viewport
	pad := c.metrics.ViewerPad
	side := math.Min(c.opts.OpenedMaxDimension, math.Min(vp.Width-2*pad, vp.Height-2*pad))
	if side <= 0 {
		return Rect{}
	}
	nw, nh := 1.0, 1.0
	if c.sizeOf != nil {
		if w, h, ok := c.sizeOf(c.tiles[i].Item().DisplaySrc()); ok && w > 0 && h > 0 {
			nw, nh = w, h
		}
	}
	w, h := side, side
	if nw >= nh {
		h = side * nh / nw
	} else {
		w = side * nw / nh
	}
	return vp.centered(w, h)
}

// compensatedRadius returns the layout-space radius that renders as r on
// screen once scaled by sx.
func compensatedRadius(r, sx float64) float64 {
	if sx <= 0 {
		return r
	}
	return r / sx
}
