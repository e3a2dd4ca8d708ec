package dome

import (
	"sort"
	"time"
)

// never is a timestamp far enough in the past that every guard window has
// elapsed.
const never = -time.Hour

// AnimationController owns the gallery state: the tile lattice, the scene
// tree, the shared rotation, the gesture machine and the focus machine. It
// is input-agnostic; Gallery feeds it ebiten input, tests feed it directly.
//
// All methods must be called from the same goroutine.
type AnimationController struct {
	opts Options

	tiles    []Tile
	builtFor []ImageItem
	builtSeg int

	root      *Node
	sphere    *Node
	layer     *Node
	tileNodes []*Node

	rotation   Rotation
	metrics    Metrics
	hasMetrics bool
	radius     radiusSmoother
	liveRadius float64
	frames     frameScheduler
	scroll     *ScrollLock

	gesture GestureState
	drag    dragState
	inertia inertiaState
	// lastDragEnd is when the last drag that actually moved ended.
	lastDragEnd       time.Duration
	tapCancelledUntil time.Duration

	focus  focusState
	tweens []*TweenGroup

	// now is the animation clock, advanced only by Tick.
	now time.Duration

	sizeOf func(src string) (w, h float64, ok bool)

	projected []tileProjection
	disposed  bool
}

// NewAnimationController creates a controller for opts. Zero-valued option
// fields take their defaults. Call Resize before the first Tick.
func NewAnimationController(opts Options) *AnimationController {
	c := &AnimationController{
		opts:              opts.withDefaults(),
		radius:            newRadiusSmoother(),
		lastDragEnd:       never,
		tapCancelledUntil: never,
	}
	c.focus.reset()
	c.scroll = NewScrollLock(c.opts.ScrollHost)

	c.root = NewNode("root", NodeContainer)
	c.sphere = NewNode("sphere", NodeSphere)
	c.layer = NewNode("viewer", NodeContainer)
	c.root.AddChild(c.sphere)
	c.root.AddChild(c.layer)

	c.rebuild()
	return c
}

// --- Configuration ---

// Options returns the effective options, with defaults applied.
func (c *AnimationController) Options() Options {
	return c.opts
}

// SetImages replaces the tile pool. Tiles are rebuilt only when the pool
// actually changed; a rebuild closes any focused tile immediately.
func (c *AnimationController) SetImages(images []ImageItem) {
	if sameImages(c.builtFor, images) {
		return
	}
	c.opts.Images = append([]ImageItem(nil), images...)
	c.rebuild()
}

// SetSegments changes the lattice column count. Non-positive values select
// the default.
func (c *AnimationController) SetSegments(n int) {
	if n <= 0 {
		n = DefaultSegments
	}
	if n == c.builtSeg {
		return
	}
	c.opts.Segments = n
	c.rebuild()
}

// SetImageSizer installs the lookup used for the focused image's natural
// size. Without one, the overlay is square.
func (c *AnimationController) SetImageSizer(fn func(src string) (w, h float64, ok bool)) {
	c.sizeOf = fn
}

func (c *AnimationController) warn(msg string) {
	c.opts.Warn(msg)
	c.emit(GalleryEvent{Type: EventWarning, TileIndex: -1, Message: msg})
}

// rebuild regenerates tiles and tile nodes from the current pool.
func (c *AnimationController) rebuild() {
	c.resetFocus()
	c.tiles = BuildTiles(c.opts.Images, c.opts.Segments, c.warn)
	c.builtFor = append(c.builtFor[:0], c.opts.Images...)
	c.builtSeg = c.opts.Segments

	for _, n := range c.tileNodes {
		n.Dispose()
	}
	c.tileNodes = make([]*Node, len(c.tiles))
	for i, t := range c.tiles {
		n := NewNode(t.Src, NodeTile)
		n.TileIndex = i
		n.Src = t.Src
		c.sphere.AddChild(n)
		c.tileNodes[i] = n
	}
	c.applyRadius(c.liveRadius)
}

// --- Sizing ---

// Resize records a container observation. viewport is the gallery's area on
// screen; screen is the full screen size used for vw/vh lengths.
func (c *AnimationController) Resize(viewport Rect, screen Vec2) {
	m := measure(viewport, screen, c.opts)
	c.metrics = m
	first := !c.hasMetrics
	c.hasMetrics = true
	c.radius.setTarget(m.Radius)
	if first {
		c.applyRadius(m.Radius)
	}
}

// Metrics returns the latest sizing observation.
func (c *AnimationController) Metrics() Metrics {
	return c.metrics
}

// Radius returns the live sphere radius, which trails the target while the
// resize spring settles.
func (c *AnimationController) Radius() float64 {
	return c.liveRadius
}

func (c *AnimationController) applyRadius(r float64) {
	c.liveRadius = r
	for i, n := range c.tileNodes {
		t := c.tiles[i]
		n.Local = tileMatrix(t, c.opts.Segments, r)
		n.Width, n.Height = tileSize(t, c.opts.Segments, r)
	}
	c.applyRotation()
}

// --- Rotation ---

// setRotation stores r and schedules the sphere transform write.
func (c *AnimationController) setRotation(r Rotation) {
	c.rotation = r
	c.frames.request(c.applyRotation)
}

func (c *AnimationController) applyRotation() {
	c.sphere.Local = sphereMatrix(c.rotation, c.liveRadius)
}

func (c *AnimationController) clampPitch(x float64) float64 {
	m := c.opts.MaxVerticalRotationDeg
	return clamp(x, -m, m)
}

// Rotation returns the current sphere rotation.
func (c *AnimationController) Rotation() Rotation {
	return c.rotation
}

// SetRotation moves the sphere directly, with the usual clamp and wrap.
// It stops inertia.
func (c *AnimationController) SetRotation(r Rotation) {
	c.stopInertia()
	c.setRotation(Rotation{X: c.clampPitch(r.X), Y: wrapAngleSigned(r.Y)})
}

// --- Clock ---

// Tick advances the controller by dt: one inertia step, the radius spring,
// running tweens, then the pending sphere transform write.
func (c *AnimationController) Tick(dt time.Duration) {
	if c.disposed {
		return
	}
	c.now += dt
	if c.gesture == GestureInertia {
		c.stepInertia()
	}
	if c.radius.step() {
		c.applyRadius(c.radius.current)
	}
	c.updateTweens(seconds(dt))
	c.frames.flush()
}

func (c *AnimationController) addTween(g *TweenGroup) {
	c.tweens = append(c.tweens, g)
}

func (c *AnimationController) updateTweens(dt float32) {
	n := len(c.tweens)
	for i := 0; i < n; i++ {
		c.tweens[i].Update(dt)
	}
	live := c.tweens[:0]
	for _, g := range c.tweens {
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(c.tweens); i++ {
		c.tweens[i] = nil
	}
	c.tweens = live
}

// --- Projection ---

type tileProjection struct {
	node *Node
	quad projectedQuad
}

func (c *AnimationController) projector() projector {
	return projector{center: c.metrics.Viewport.Center(), perspective: 2 * c.liveRadius}
}

// visibleTiles projects every visible, front-facing tile and returns them
// sorted far to near. The slice is reused between calls.
func (c *AnimationController) visibleTiles() []tileProjection {
	c.projected = c.projected[:0]
	if c.liveRadius <= 0 {
		return c.projected
	}
	p := c.projector()
	for _, n := range c.tileNodes {
		if !n.Visible {
			continue
		}
		q := p.projectQuad(n.WorldMatrix(), n.Width, n.Height)
		if !q.ok || !q.facing {
			continue
		}
		c.projected = append(c.projected, tileProjection{node: n, quad: q})
	}
	sort.SliceStable(c.projected, func(i, j int) bool {
		return c.projected[i].quad.depth < c.projected[j].quad.depth
	})
	return c.projected
}

// TileAt returns the index of the nearest visible tile under (x, y), or -1.
func (c *AnimationController) TileAt(x, y float64) int {
	vis := c.visibleTiles()
	for i := len(vis) - 1; i >= 0; i-- {
		if vis[i].quad.polygon().Contains(x, y) {
			return vis[i].node.TileIndex
		}
	}
	return -1
}

// TileNode returns the scene node of tile i, or nil.
func (c *AnimationController) TileNode(i int) *Node {
	if i < 0 || i >= len(c.tileNodes) {
		return nil
	}
	return c.tileNodes[i]
}

// --- Accessors ---

// Now returns the animation clock.
func (c *AnimationController) Now() time.Duration {
	return c.now
}

// Tiles returns the current lattice. The slice MUST NOT be mutated.
func (c *AnimationController) Tiles() []Tile {
	return c.tiles
}

// Root returns the root of the gallery tree.
func (c *AnimationController) Root() *Node {
	return c.root
}

// GestureState returns the drag/inertia state.
func (c *AnimationController) GestureState() GestureState {
	return c.gesture
}

// FocusPhase returns the open/close state.
func (c *AnimationController) FocusPhase() FocusPhase {
	return c.focus.phase
}

// FocusedTile returns the focused tile index, or -1.
func (c *AnimationController) FocusedTile() int {
	if c.focus.phase == FocusClosed {
		return -1
	}
	return c.focus.index
}

// ScrollLock returns the host scroll lock.
func (c *AnimationController) ScrollLock() *ScrollLock {
	return c.scroll
}

// --- Teardown ---

// Dispose cancels pending work, removes transient nodes and releases the
// scroll lock. The controller is unusable afterwards.
func (c *AnimationController) Dispose() {
	if c.disposed {
		return
	}
	c.frames.cancel()
	c.stopInertia()
	c.drag = dragState{}
	c.resetFocus()
	c.scroll.forceUnlock()
	c.root.Dispose()
	c.tileNodes = nil
	c.disposed = true
}
