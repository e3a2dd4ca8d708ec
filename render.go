package dome

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// tileGrid is the number of cells per side a tile quad is split into.
// Texture coordinates interpolate affinely per triangle, so subdividing
// keeps the perspective warp of each tile close to a true projection.
const tileGrid = 4

// placeholderColor fills tiles whose image has not loaded.
var placeholderColor = Color{R: 0.16, G: 0.14, B: 0.2, A: 1}

var whitePixel *ebiten.Image

func getWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// renderStats counts per-frame work for debug output.
type renderStats struct {
	tilesDrawn  int
	tilesCulled int
	drawCalls   int
	drawTime    time.Duration
}

// renderer owns reusable vertex buffers.
type renderer struct {
	verts []ebiten.Vertex
	inds  []uint16
	stats renderStats
}

// quadSource describes how a texture maps onto a quad.
type quadSource struct {
	img    *ebiten.Image
	crop   image.Rectangle // sub-rect of img, relative to img bounds
	tint   Color           // multiplied in, not premultiplied
	radius float64         // in the quad's local pixels
	gray   bool
}

// coverCrop returns the centered sub-rect of b that fills a quad of aspect
// w/h without distortion.
func coverCrop(b image.Rectangle, w, h float64) image.Rectangle {
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return b
	}
	qa, ia := w/h, iw/ih
	cw, ch := iw, ih
	if ia > qa {
		cw = ih * qa
	} else {
		ch = iw / qa
	}
	x0 := b.Min.X + int(math.Round((iw-cw)/2))
	y0 := b.Min.Y + int(math.Round((ih-ch)/2))
	return image.Rect(x0, y0, x0+max(1, int(math.Round(cw))), y0+max(1, int(math.Round(ch))))
}

// draw renders the gallery: tiles far to near, then screen-space nodes in
// tree order.
func (r *renderer) draw(dst *ebiten.Image, g *Gallery) {
	start := time.Now()
	r.stats = renderStats{}
	c := g.ctrl
	opts := c.opts
	screen := c.metrics.Screen

	vis := c.visibleTiles()
	r.stats.tilesCulled = len(c.tileNodes) - len(vis)
	tileRadius := opts.ImageBorderRadius.Resolve(screen)
	p := c.projector()
	for _, tp := range vis {
		n := tp.node
		if n.Alpha <= 0 {
			continue
		}
		src := r.sourceFor(g.textures, n.Src, false, n.Width, n.Height)
		src.radius = tileRadius
		src.gray = opts.Grayscale
		src.tint.A *= n.Alpha
		r.drawProjected(dst, p, n.WorldMatrix(), n.Width, n.Height, src)
		r.stats.tilesDrawn++
	}

	for _, n := range c.layer.Children() {
		if !n.Visible || n.Alpha <= 0 {
			continue
		}
		sr := n.ScreenRect()
		if sr.Empty() {
			continue
		}
		switch n.Kind {
		case NodeBackdrop:
			r.drawRect(dst, sr, quadSource{img: getWhitePixel(), crop: image.Rect(0, 0, 1, 1), tint: n.Color}, n.Alpha)
		case NodeOverlay, NodeClosing:
			if n.Image == nil && g.textures != nil {
				n.Image = g.textures.Full(n.Src)
			}
			src := r.sourceFor(g.textures, n.Src, true, sr.Width, sr.Height)
			if n.Image != nil {
				src.img = n.Image
				src.crop = coverCrop(n.Image.Bounds(), sr.Width, sr.Height)
				src.tint = ColorWhite
			}
			src.radius = n.ScreenRadius()
			src.gray = opts.Grayscale
			r.drawRect(dst, sr, src, n.Alpha)
		}
	}
	r.stats.drawTime = time.Since(start)
}

// sourceFor picks the texture for src, falling back to a placeholder fill.
func (r *renderer) sourceFor(tc *TextureCache, src string, full bool, w, h float64) quadSource {
	var img *ebiten.Image
	if tc != nil && src != "" {
		if full {
			img = tc.Full(src)
		}
		if img == nil {
			img = tc.Thumb(src)
		}
	}
	if img == nil {
		return quadSource{img: getWhitePixel(), crop: image.Rect(0, 0, 1, 1), tint: placeholderColor}
	}
	return quadSource{img: img, crop: coverCrop(img.Bounds(), w, h), tint: ColorWhite}
}

// drawProjected draws a w×h quad centered on the local origin of m as a
// subdivided grid of projected vertices.
func (r *renderer) drawProjected(dst *ebiten.Image, p projector, m mgl64.Mat4, w, h float64, src quadSource) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	cr, cg, cb, ca := premul(src.tint)
	for j := 0; j <= tileGrid; j++ {
		v := float64(j) / tileGrid
		for i := 0; i <= tileGrid; i++ {
			u := float64(i) / tileGrid
			pt, ok := p.project(transformPoint(m, mgl64.Vec3{(u - 0.5) * w, (v - 0.5) * h, 0}))
			if !ok {
				return
			}
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   float32(pt.X),
				DstY:   float32(pt.Y),
				SrcX:   float32(float64(src.crop.Min.X) + u*float64(src.crop.Dx())),
				SrcY:   float32(float64(src.crop.Min.Y) + v*float64(src.crop.Dy())),
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
	}
	const row = tileGrid + 1
	for j := 0; j < tileGrid; j++ {
		for i := 0; i < tileGrid; i++ {
			a := uint16(j*row + i)
			r.inds = append(r.inds, a, a+1, a+row, a+1, a+row+1, a+row)
		}
	}
	r.submit(dst, w, h, src)
}

// drawRect draws a screen-space rect with alpha applied.
func (r *renderer) drawRect(dst *ebiten.Image, rect Rect, src quadSource, alpha float64) {
	src.tint.A *= alpha
	cr, cg, cb, ca := premul(src.tint)
	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.Width), float32(rect.Y+rect.Height)
	sx0, sy0 := float32(src.crop.Min.X), float32(src.crop.Min.Y)
	sx1, sy1 := float32(src.crop.Max.X), float32(src.crop.Max.Y)
	r.verts = append(r.verts[:0],
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: sx0, SrcY: sy0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: sx1, SrcY: sy0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: sx0, SrcY: sy1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: sx1, SrcY: sy1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	)
	r.inds = append(r.inds[:0], 0, 1, 2, 1, 3, 2)
	r.submit(dst, rect.Width, rect.Height, src)
}

// submit issues one draw call for the buffered vertices, through the tile
// shader when it compiled.
func (r *renderer) submit(dst *ebiten.Image, w, h float64, src quadSource) {
	r.stats.drawCalls++
	sh := loadTileShader()
	if sh == nil {
		op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
		dst.DrawTriangles(r.verts, r.inds, src.img, op)
		return
	}
	gray := float32(0)
	if src.gray {
		gray = 1
	}
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: map[string]any{
			"CropOrigin": []float32{float32(src.crop.Min.X), float32(src.crop.Min.Y)},
			"CropSize":   []float32{float32(src.crop.Dx()), float32(src.crop.Dy())},
			"Size":       []float32{float32(w), float32(h)},
			"Radius":     float32(src.radius),
			"Grayscale":  gray,
		},
	}
	op.Images[0] = src.img
	dst.DrawTrianglesShader(r.verts, r.inds, sh, op)
}

// premul converts a straight-alpha color to premultiplied vertex components.
func premul(c Color) (r, g, b, a float32) {
	a = float32(c.A)
	return float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a
}
