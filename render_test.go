package dome

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCoverCropWideImage(t *testing.T) {
	// 400x100 into a square quad keeps the central 100x100.
	got := coverCrop(image.Rect(0, 0, 400, 100), 50, 50)
	if got != image.Rect(150, 0, 250, 100) {
		t.Errorf("crop = %v", got)
	}
}

func TestCoverCropTallImage(t *testing.T) {
	got := coverCrop(image.Rect(0, 0, 100, 400), 200, 100)
	if got != image.Rect(0, 175, 100, 225) {
		t.Errorf("crop = %v", got)
	}
}

func TestCoverCropOffsetBounds(t *testing.T) {
	got := coverCrop(image.Rect(10, 20, 110, 120), 30, 30)
	if got != image.Rect(10, 20, 110, 120) {
		t.Errorf("matching aspect should keep bounds, got %v", got)
	}
	if got := coverCrop(image.Rect(0, 0, 10, 10), 0, 5); got != image.Rect(0, 0, 10, 10) {
		t.Errorf("degenerate quad should keep bounds, got %v", got)
	}
}

func TestPremul(t *testing.T) {
	r, g, b, a := premul(Color{R: 1, G: 0.5, B: 0, A: 0.5})
	if r != 0.5 || g != 0.25 || b != 0 || a != 0.5 {
		t.Errorf("premul = %v %v %v %v", r, g, b, a)
	}
}

func TestDrawStats(t *testing.T) {
	g := newTestGallery(t, Options{})
	dst := ebiten.NewImage(1280, 720)
	g.Draw(dst)

	st := g.render.stats
	total := len(g.ctrl.Tiles())
	if st.tilesDrawn == 0 || st.tilesDrawn+st.tilesCulled != total {
		t.Errorf("drawn %d + culled %d != %d", st.tilesDrawn, st.tilesCulled, total)
	}
	if st.drawCalls != st.tilesDrawn {
		t.Errorf("drawCalls = %d, want one per tile (%d)", st.drawCalls, st.tilesDrawn)
	}
}

func TestDrawFocusedLayer(t *testing.T) {
	g := newTestGallery(t, Options{})
	dst := ebiten.NewImage(1280, 720)
	g.Draw(dst)
	tiles := g.render.stats.tilesDrawn

	g.ctrl.Open(frontTile(g.ctrl))
	run(g.ctrl, 500*time.Millisecond)
	g.Draw(dst)

	st := g.render.stats
	if st.tilesDrawn != tiles-1 {
		t.Errorf("tilesDrawn = %d, want %d with the focused tile hidden", st.tilesDrawn, tiles-1)
	}
	// Desktop backdrop is transparent and skipped; the overlay adds one call.
	if st.drawCalls != st.tilesDrawn+1 {
		t.Errorf("drawCalls = %d, want %d", st.drawCalls, st.tilesDrawn+1)
	}
}

func TestDrawPlaceholderSource(t *testing.T) {
	var r renderer
	src := r.sourceFor(NewTextureCache(nil, 0), "missing", false, 10, 10)
	if src.img != getWhitePixel() || src.tint != placeholderColor {
		t.Errorf("missing texture should use the placeholder, got %+v", src)
	}
}

func TestDrawProjectedGrid(t *testing.T) {
	var r renderer
	g := newTestGallery(t, Options{})
	n := g.ctrl.TileNode(frontTile(g.ctrl))
	dst := ebiten.NewImage(64, 64)
	src := quadSource{img: getWhitePixel(), crop: image.Rect(0, 0, 1, 1), tint: ColorWhite}
	r.drawProjected(dst, g.ctrl.projector(), n.WorldMatrix(), n.Width, n.Height, src)

	if len(r.verts) != (tileGrid+1)*(tileGrid+1) {
		t.Errorf("verts = %d", len(r.verts))
	}
	if len(r.inds) != tileGrid*tileGrid*6 {
		t.Errorf("inds = %d", len(r.inds))
	}
	// Corner source coords span the crop.
	last := r.verts[len(r.verts)-1]
	if math.Abs(float64(last.SrcX)-1) > 1e-6 || math.Abs(float64(last.SrcY)-1) > 1e-6 {
		t.Errorf("last vertex src = %v, %v", last.SrcX, last.SrcY)
	}
}
