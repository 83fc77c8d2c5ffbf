package source

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Shape coordinates follow the inclusive-corner convention: a box
// (x0,y0)-(x1,y1) covers both corner pixels.

func box(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1+1, y1+1)
}

func fillRect(dst *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws an outline of the given width inside r.
func strokeRect(dst *image.NRGBA, r image.Rectangle, width int, c color.Color) {
	if width*2 >= r.Dx() || width*2 >= r.Dy() {
		fillRect(dst, r, c)
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func insideEllipse(r image.Rectangle, x, y int) bool {
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (float64(x) + 0.5 - float64(r.Min.X) - rx) / rx
	dy := (float64(y) + 0.5 - float64(r.Min.Y) - ry) / ry
	return dx*dx+dy*dy <= 1
}

func fillEllipse(dst *image.NRGBA, r image.Rectangle, c color.Color) {
	area := r.Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if insideEllipse(r, x, y) {
				dst.Set(x, y, c)
			}
		}
	}
}

// strokeEllipse draws the ring between r and r inset by width.
func strokeEllipse(dst *image.NRGBA, r image.Rectangle, width int, c color.Color) {
	inner := r.Inset(width)
	area := r.Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if insideEllipse(r, x, y) && !insideEllipse(inner, x, y) {
				dst.Set(x, y, c)
			}
		}
	}
}

// line draws a segment of the given width by distance to the segment.
func line(dst *image.NRGBA, x0, y0, x1, y1, width int, c color.Color) {
	half := math.Max(float64(width)/2, 0.5)
	pad := int(math.Ceil(half))
	area := image.Rect(min(x0, x1)-pad, min(y0, y1)-pad, max(x0, x1)+pad+1, max(y0, y1)+pad+1).
		Intersect(dst.Bounds())

	ax, ay := float64(x0), float64(y0)
	bx, by := float64(x1), float64(y1)
	vx, vy := bx-ax, by-ay
	lenSq := vx*vx + vy*vy

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			px, py := float64(x), float64(y)
			t := 0.0
			if lenSq > 0 {
				t = math.Max(0, math.Min(1, ((px-ax)*vx+(py-ay)*vy)/lenSq))
			}
			dx := px - (ax + t*vx)
			dy := py - (ay + t*vy)
			if math.Hypot(dx, dy) <= half {
				dst.Set(x, y, c)
			}
		}
	}
}

// drawText writes s with its top-left corner at (x, y).
func drawText(dst *image.NRGBA, x, y int, s string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
