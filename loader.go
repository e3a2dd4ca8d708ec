package dome

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultPreloadWorkers bounds concurrent decodes in Preload.
const DefaultPreloadWorkers = 4

// ImageSource resolves an ImageItem source to a decoded image.
// Implementations must be safe for concurrent use.
type ImageSource interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// SourceFunc adapts a function to ImageSource.
type SourceFunc func(ctx context.Context, src string) (image.Image, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// FileSource loads images from disk. Relative sources resolve against Root.
// PNG, JPEG, GIF, WebP and TGA are decoded.
type FileSource struct {
	Root string
}

// Load opens and decodes the file named by src.
func (s FileSource) Load(ctx context.Context, src string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := src
	if !filepath.IsAbs(path) && s.Root != "" {
		path = filepath.Join(s.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decodeImage(f, path)
}

// HTTPSource fetches images over HTTP(S). A nil Client uses http.DefaultClient.
type HTTPSource struct {
	Client *http.Client
}

// Load fetches and decodes the image at URL src.
func (s HTTPSource) Load(ctx context.Context, src string) (image.Image, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", src, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	return decodeImage(resp.Body, src)
}

func decodeImage(r io.Reader, name string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// thumbnail scales img so its longer side is at most size, using CatmullRom.
// Images already within size are converted to RGBA unchanged.
func thumbnail(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size > 0 && (w > size || h > size) {
		if w >= h {
			h = max(1, h*size/w)
			w = size
		} else {
			w = max(1, w*size/h)
			h = size
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// decoded is the CPU-side result of a load, ready for GPU upload.
type decoded struct {
	full  image.Image
	thumb *image.RGBA
}

// TextureCache loads gallery images through an ImageSource and hands out
// GPU images: downscaled thumbnails for tiles and full images for the
// focused overlay. Preload and Put may be called from any goroutine; Thumb,
// Full and Dispose own the GPU images and must run on the game goroutine.
type TextureCache struct {
	src       ImageSource
	thumbSize int

	mu      sync.Mutex
	decoded map[string]decoded
	failed  map[string]error
	stale   map[string]struct{} // replaced by Put, GPU copies not yet dropped

	thumbs map[string]*ebiten.Image
	fulls  map[string]*ebiten.Image
}

// NewTextureCache creates a cache reading from src. thumbSize bounds the
// longer side of tile thumbnails; non-positive selects DefaultTileTextureSize.
func NewTextureCache(src ImageSource, thumbSize int) *TextureCache {
	if thumbSize <= 0 {
		thumbSize = DefaultTileTextureSize
	}
	return &TextureCache{
		src:       src,
		thumbSize: thumbSize,
		decoded:   make(map[string]decoded),
		failed:    make(map[string]error),
		stale:     make(map[string]struct{}),
		thumbs:    make(map[string]*ebiten.Image),
		fulls:     make(map[string]*ebiten.Image),
	}
}

// Put stores an already decoded image under src, replacing any earlier one.
// GPU copies of the old image are dropped on the next Thumb or Full call.
func (c *TextureCache) Put(src string, img image.Image) {
	d := decoded{full: img, thumb: thumbnail(img, c.thumbSize)}
	c.mu.Lock()
	c.decoded[src] = d
	delete(c.failed, src)
	c.stale[src] = struct{}{}
	c.mu.Unlock()
}

// takeStale returns and clears the sources replaced since the last call.
func (c *TextureCache) takeStale() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stale) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.stale))
	for src := range c.stale {
		out = append(out, src)
	}
	clear(c.stale)
	return out
}

func (c *TextureCache) sweep() {
	for _, src := range c.takeStale() {
		c.dropGPU(src)
	}
}

func (c *TextureCache) dropGPU(src string) {
	if img, ok := c.thumbs[src]; ok {
		img.Deallocate()
		delete(c.thumbs, src)
	}
	if img, ok := c.fulls[src]; ok {
		img.Deallocate()
		delete(c.fulls, src)
	}
}

// Preload loads every distinct Src and FullSrc of items with at most
// workers concurrent loads. Failed sources are remembered and skipped by
// later calls; the first failure is returned after all loads finish.
func (c *TextureCache) Preload(ctx context.Context, items []ImageItem, workers int) error {
	if c.src == nil {
		return fmt.Errorf("preload: no image source")
	}
	if workers <= 0 {
		workers = DefaultPreloadWorkers
	}

	seen := make(map[string]bool)
	var srcs []string
	for _, it := range items {
		for _, s := range []string{it.Src, it.FullSrc} {
			if s == "" || seen[s] || c.known(s) {
				continue
			}
			seen[s] = true
			srcs = append(srcs, s)
		}
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, s := range srcs {
		g.Go(func() error {
			img, err := c.src.Load(ctx, s)
			if err != nil {
				c.mu.Lock()
				c.failed[s] = err
				c.mu.Unlock()
				return fmt.Errorf("preload: %w", err)
			}
			d := decoded{full: img, thumb: thumbnail(img, c.thumbSize)}
			c.mu.Lock()
			c.decoded[s] = d
			c.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func (c *TextureCache) known(src string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.decoded[src]
	_, bad := c.failed[src]
	return ok || bad
}

func (c *TextureCache) lookup(src string) (decoded, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.decoded[src]
	return d, ok
}

// Err returns the load error recorded for src, if any.
func (c *TextureCache) Err(src string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[src]
}

// Thumb returns the tile texture for src, or nil while it is not loaded.
func (c *TextureCache) Thumb(src string) *ebiten.Image {
	c.sweep()
	if img, ok := c.thumbs[src]; ok {
		return img
	}
	d, ok := c.lookup(src)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(d.thumb)
	c.thumbs[src] = img
	return img
}

// Full returns the full-resolution texture for src, or nil while it is not
// loaded.
func (c *TextureCache) Full(src string) *ebiten.Image {
	c.sweep()
	if img, ok := c.fulls[src]; ok {
		return img
	}
	d, ok := c.lookup(src)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(d.full)
	c.fulls[src] = img
	return img
}

// Size returns the natural pixel size of src.
func (c *TextureCache) Size(src string) (w, h float64, ok bool) {
	d, ok := c.lookup(src)
	if !ok {
		return 0, 0, false
	}
	b := d.full.Bounds()
	return float64(b.Dx()), float64(b.Dy()), true
}

// Dispose deallocates every GPU image held by the cache.
func (c *TextureCache) Dispose() {
	for src := range c.thumbs {
		c.dropGPU(src)
	}
	for src := range c.fulls {
		c.dropGPU(src)
	}
}
