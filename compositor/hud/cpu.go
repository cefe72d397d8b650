package hud

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend/software"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	textMargin = 8
	lineHeight = 16
)

// composeCPU returns ops that paint the background, a triangle and the
// HUD text into the software framebuffer.
func (c *Compositor) composeCPU(fc frameloop.FrameContext) software.Ops {
	bg := c.background
	lines := c.Lines(fc)
	tint := triangleColor(c.pulse())

	return software.Ops{
		func(dst *image.RGBA) {
			draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		},
		func(dst *image.RGBA) {
			fillTriangle(dst, tint)
		},
		func(dst *image.RGBA) {
			d := &font.Drawer{
				Dst:  dst,
				Src:  image.NewUniform(color.White),
				Face: basicfont.Face7x13,
			}
			for i, line := range lines {
				d.Dot = fixed.P(textMargin, textMargin+lineHeight*(i+1))
				d.DrawString(line)
			}
		},
	}
}

// triangleColor returns the triangle tint for a pulse value.
func triangleColor(pulse float64) color.RGBA {
	return color.RGBA{R: uint8(255 * pulse), A: 255}
}

// fillTriangle rasterizes the same triangle the GPU path draws, with
// vertices at (0, 0.5), (-0.5, -0.5) and (0.5, -0.5) in clip space.
func fillTriangle(dst *image.RGBA, c color.RGBA) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	toPixel := func(x, y float64) (float64, float64) {
		return (x + 1) / 2 * w, (1 - y) / 2 * h
	}
	ax, ay := toPixel(0, 0.5)
	bx, by := toPixel(-0.5, -0.5)
	cx, cy := toPixel(0.5, -0.5)

	edge := func(x0, y0, x1, y1, px, py float64) float64 {
		return (x1-x0)*(py-y0) - (y1-y0)*(px-x0)
	}
	for y := int(ay); y <= int(by) && y < b.Max.Y; y++ {
		for x := int(bx); x <= int(cx) && x < b.Max.X; x++ {
			if x < b.Min.X || y < b.Min.Y {
				continue
			}
			px, py := float64(x)+0.5, float64(y)+0.5
			e0 := edge(ax, ay, bx, by, px, py)
			e1 := edge(bx, by, cx, cy, px, py)
			e2 := edge(cx, cy, ax, ay, px, py)
			if (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0) {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}
