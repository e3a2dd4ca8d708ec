package dome

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Gallery is a dome gallery ready to run as an ebiten.Game. It owns an
// AnimationController, a TextureCache and the input and render plumbing.
type Gallery struct {
	ctrl     *AnimationController
	textures *TextureCache
	render   renderer

	// ClearColor fills the screen before drawing. Zero leaves it untouched.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes files. Default "screenshots".
	ScreenshotDir string
	// ScreenshotFormat selects the file encoding. Default PNG.
	ScreenshotFormat ScreenshotFormat

	viewport      Rect
	fixedViewport bool
	screenW       int
	screenH       int

	pointer         pointerState
	touchIDs        []ebiten.TouchID
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	updateFunc func() error
	debug      bool
	hud        *hud
	disposed   bool
}

// NewGallery creates a gallery for opts. src resolves image sources; it may
// be nil, in which case tiles draw as placeholders until Put is called on
// Textures().
func NewGallery(opts Options, src ImageSource) *Gallery {
	c := NewAnimationController(opts)
	g := &Gallery{
		ctrl:          c,
		textures:      NewTextureCache(src, c.opts.TileTextureSize),
		ScreenshotDir: "screenshots",
	}
	c.SetImageSizer(g.textures.Size)
	return g
}

// Controller returns the gallery's animation controller.
func (g *Gallery) Controller() *AnimationController {
	return g.ctrl
}

// Textures returns the gallery's texture cache.
func (g *Gallery) Textures() *TextureCache {
	return g.textures
}

// Preload loads every image in the current pool. It blocks; call it before
// ebiten.RunGame or from a goroutine.
func (g *Gallery) Preload(ctx context.Context, workers int) error {
	return g.textures.Preload(ctx, g.ctrl.opts.Images, workers)
}

// SetImages replaces the image pool. See AnimationController.SetImages.
func (g *Gallery) SetImages(images []ImageItem) {
	g.ctrl.SetImages(images)
}

// SetViewport pins the gallery to r instead of the full window.
// A zero rect restores full-window layout.
func (g *Gallery) SetViewport(r Rect) {
	g.viewport = r
	g.fixedViewport = !r.Empty()
	if g.screenW > 0 && g.screenH > 0 {
		g.observe()
	}
}

// SetUpdateFunc registers a callback run at the end of every Update.
func (g *Gallery) SetUpdateFunc(fn func() error) {
	g.updateFunc = fn
}

// Update processes input and advances animations by one tick.
func (g *Gallery) Update() error {
	if g.disposed {
		return nil
	}
	dt := tickDuration(ebiten.TPS(), ebiten.ActualTPS())
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	g.processInput()
	g.ctrl.Tick(dt)
	if g.hud != nil {
		g.hud.update(dt.Seconds())
	}
	if g.updateFunc != nil {
		return g.updateFunc()
	}
	return nil
}

// Draw renders the gallery, then the debug HUD and queued screenshots.
func (g *Gallery) Draw(screen *ebiten.Image) {
	if g.disposed {
		return
	}
	if g.ClearColor != (Color{}) {
		screen.Fill(g.ClearColor.toRGBA())
	}
	g.render.draw(screen, g)
	if g.debug {
		g.debugLog(g.render.stats)
	}
	if g.hud != nil {
		g.hud.draw(screen, g)
	}
	g.flushScreenshots(screen)
}

// tickDuration returns the clock step for one Update. With
// ebiten.SyncWithFPS the tick rate is negative, so the measured rate is
// used, falling back to 60 before one is known.
func tickDuration(tps int, actual float64) time.Duration {
	if tps > 0 {
		return time.Second / time.Duration(tps)
	}
	if actual > 0 {
		return time.Duration(float64(time.Second) / actual)
	}
	return time.Second / 60
}

// Layout tracks the window size and feeds size changes to the controller.
func (g *Gallery) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.observe()
	}
	return outsideWidth, outsideHeight
}

func (g *Gallery) observe() {
	screen := Vec2{X: float64(g.screenW), Y: float64(g.screenH)}
	vp := Rect{Width: screen.X, Height: screen.Y}
	if g.fixedViewport {
		vp = g.viewport
	}
	g.ctrl.Resize(vp, screen)
}

// Dispose releases the controller, GPU textures and scroll lock.
func (g *Gallery) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.ctrl.Dispose()
	g.textures.Dispose()
	g.injectQueue = nil
	g.screenshotQueue = nil
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, per-frame render stats are logged to stderr and a HUD is
// drawn in the top-left corner.
func (g *Gallery) SetDebugMode(enabled bool) {
	g.debug = enabled
	globalDebug = enabled
	if enabled && g.hud == nil {
		g.hud = newHUD()
	} else if !enabled {
		g.hud = nil
	}
}

// globalDebug mirrors the most recently set Gallery debug flag so that node
// operations (which lack a Gallery pointer) can check it cheaply.
var globalDebug bool
