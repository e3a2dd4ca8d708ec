package dome

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// tileShaderSrc draws a textured quad clipped to a rounded rectangle, with
// optional desaturation. Crop selects the source sub-rect mapped onto the
// quad; Size and Radius are in the quad's local pixels.
const tileShaderSrc = `//kage:unit pixels

package main

var CropOrigin vec2
var CropSize vec2
var Size vec2
var Radius float
var Grayscale float

func roundedRectDist(p, half vec2, r float) float {
	q := abs(p) - half + vec2(r)
	return length(max(q, vec2(0))) + min(max(q.x, q.y), 0) - r
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := (srcPos - imageSrc0Origin() - CropOrigin) / CropSize
	p := uv*Size - Size/2
	r := min(Radius, min(Size.x, Size.y)/2)
	d := roundedRectDist(p, Size/2, r)
	cover := clamp(0.5-d, 0, 1)

	c := imageSrc0At(srcPos)
	l := dot(c.rgb, vec3(0.299, 0.587, 0.114))
	c = vec4(mix(c.rgb, vec3(l), Grayscale), c.a)
	return c * color * cover
}
`

var (
	tileShader         *ebiten.Shader
	tileShaderCompiled bool
)

// loadTileShader compiles the tile shader once. On failure it logs to
// stderr and returns nil; callers then draw unrounded quads.
func loadTileShader() *ebiten.Shader {
	if tileShaderCompiled {
		return tileShader
	}
	tileShaderCompiled = true
	s, err := ebiten.NewShader([]byte(tileShaderSrc))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[dome] shader: %v\n", err)
		return nil
	}
	tileShader = s
	return tileShader
}
