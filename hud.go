package dome

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often, in seconds, the HUD text is redrawn.
const hudRefresh = 0.5

// hud is the debug overlay: FPS/TPS plus gallery state. The text is
// re-rendered into its own image about twice a second.
type hud struct {
	img     *ebiten.Image
	elapsed float64
	dirty   bool
}

func newHUD() *hud {
	// 240x64 fits four lines of ebitenutil's debug font.
	return &hud{img: ebiten.NewImage(240, 64), dirty: true}
}

func (h *hud) update(dt float64) {
	h.elapsed += dt
	if h.elapsed >= hudRefresh {
		h.elapsed = 0
		h.dirty = true
	}
}

func (h *hud) draw(screen *ebiten.Image, g *Gallery) {
	if h.dirty {
		h.dirty = false
		c := g.ctrl
		h.img.Clear()
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, fmt.Sprintf(
			"FPS: %.1f  TPS: %.1f\nrot: %.1f, %.1f\ngesture: %s\nfocus: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			c.rotation.X, c.rotation.Y, c.gesture, c.focus.phase))
	}
	screen.DrawImage(h.img, nil)
}
