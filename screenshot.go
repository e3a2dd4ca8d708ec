package dome

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// ScreenshotFormat selects the encoding of files written by Screenshot.
type ScreenshotFormat uint8

const (
	ScreenshotPNG  ScreenshotFormat = iota // lossless PNG
	ScreenshotWebP                         // lossless WebP, smaller files
)

// ParseScreenshotFormat maps "png" or "webp" to a format.
func ParseScreenshotFormat(s string) (ScreenshotFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return ScreenshotPNG, nil
	case "webp":
		return ScreenshotWebP, nil
	}
	return ScreenshotPNG, fmt.Errorf("unknown screenshot format %q", s)
}

func (f ScreenshotFormat) ext() string {
	if f == ScreenshotWebP {
		return ".webp"
	}
	return ".png"
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The file is written to ScreenshotDir with a
// timestamped name. Safe to call from Update or Draw.
func (g *Gallery) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Gallery.Draw.
func (g *Gallery) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[dome] screenshot: mkdir %s: %v\n", g.ScreenshotDir, err)
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.screenshotQueue {
		name := fmt.Sprintf("%s_%s%s", stamp, sanitizeLabel(label), g.ScreenshotFormat.ext())
		path := filepath.Join(g.ScreenshotDir, name)
		if err := writeImage(path, img, g.ScreenshotFormat); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[dome] screenshot: %v\n", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA bytes to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writeImage encodes img to path in the given format.
func writeImage(path string, img image.Image, format ScreenshotFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch format {
	case ScreenshotWebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
