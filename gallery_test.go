package dome

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewGalleryDefaults(t *testing.T) {
	g := NewGallery(Options{Warn: quiet}, nil)
	if g.Controller() == nil || g.Textures() == nil {
		t.Fatal("gallery should own a controller and a texture cache")
	}
	if g.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", g.ScreenshotDir)
	}
	if len(g.Controller().Tiles()) != SlotCount(DefaultSegments) {
		t.Errorf("tiles = %d", len(g.Controller().Tiles()))
	}
}

func TestLayoutResizesController(t *testing.T) {
	g := NewGallery(Options{Warn: quiet}, nil)
	w, h := g.Layout(1280, 720)
	if w != 1280 || h != 720 {
		t.Errorf("Layout = %d, %d", w, h)
	}
	m := g.Controller().Metrics()
	if m.Viewport != (Rect{Width: 1280, Height: 720}) || m.Screen != (Vec2{X: 1280, Y: 720}) {
		t.Errorf("metrics = %+v", m)
	}
	if g.Controller().Radius() != 640 {
		t.Errorf("radius = %v", g.Controller().Radius())
	}
}

func TestSetViewport(t *testing.T) {
	g := NewGallery(Options{Warn: quiet}, nil)
	g.Layout(1920, 1080)
	vp := Rect{X: 100, Y: 50, Width: 800, Height: 600}
	g.SetViewport(vp)
	if got := g.Controller().Metrics().Viewport; got != vp {
		t.Errorf("viewport = %+v, want %+v", got, vp)
	}
	if got := g.Controller().projector().center; got != (Vec2{X: 500, Y: 350}) {
		t.Errorf("projection center = %+v", got)
	}
	g.SetViewport(Rect{})
	if got := g.Controller().Metrics().Viewport; got != (Rect{Width: 1920, Height: 1080}) {
		t.Errorf("viewport after reset = %+v", got)
	}
}

func TestGallerySetImages(t *testing.T) {
	g := newTestGallery(t, Options{})
	g.SetImages(Images("only"))
	for _, tile := range g.Controller().Tiles() {
		if tile.Src != "only" {
			t.Fatalf("tile src = %q", tile.Src)
		}
	}
}

func TestUpdateRunsUpdateFunc(t *testing.T) {
	g := newTestGallery(t, Options{})
	want := errors.New("stop")
	g.SetUpdateFunc(func() error { return want })
	g.InjectPress(10, 10)
	before := g.Controller().Now()
	if err := g.Update(); !errors.Is(err, want) {
		t.Errorf("Update err = %v", err)
	}
	if g.Controller().Now() <= before {
		t.Error("Update should advance the clock")
	}
	if !g.pointer.down {
		t.Error("Update should consume injected input")
	}
}

func TestTickDuration(t *testing.T) {
	second := float64(time.Second)
	tests := []struct {
		name   string
		tps    int
		actual float64
		want   time.Duration
	}{
		{"fixed", 60, 0, time.Second / 60},
		{"fixed ignores measured", 120, 30, time.Second / 120},
		{"sync with fps", ebiten.SyncWithFPS, 144, time.Duration(second / 144)},
		{"sync before measurement", ebiten.SyncWithFPS, 0, time.Second / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tickDuration(tt.tps, tt.actual)
			if got != tt.want {
				t.Errorf("tickDuration(%d, %v) = %v, want %v", tt.tps, tt.actual, got, tt.want)
			}
			if got <= 0 {
				t.Errorf("tickDuration(%d, %v) = %v, want positive", tt.tps, tt.actual, got)
			}
		})
	}
}

func TestGalleryDispose(t *testing.T) {
	g := newTestGallery(t, Options{})
	g.Screenshot("x")
	g.InjectClick(1, 1)
	g.Dispose()
	if !g.Controller().Root().IsDisposed() {
		t.Error("dispose should release the controller tree")
	}
	if g.injectQueue != nil || g.screenshotQueue != nil {
		t.Error("dispose should drop queued work")
	}
	if err := g.Update(); err != nil {
		t.Errorf("Update after dispose = %v", err)
	}
	g.Dispose()
}
