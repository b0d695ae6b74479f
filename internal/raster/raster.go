// Package raster provides the pixel-level drawing primitives shared by the
// annotation tools, the selection overlay and the editor window. All
// functions draw directly into an *image.RGBA and clip silently at the
// image bounds.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// Premultiply converts a straight-alpha colour to the premultiplied form
// image/draw compositing expects. Opaque colours pass through unchanged.
func Premultiply(c color.RGBA) color.RGBA {
	if c.A == 255 {
		return c
	}
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

// Line draws a straight segment from (x0, y0) to (x1, y1) with the given
// stroke thickness.
func Line(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// CappedLine draws a segment with rounded end caps. With thickness <= 2 the
// caps would be invisible, so it falls back to a plain line.
func CappedLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	Line(img, x0, y0, x1, y1, col, thick)
	if thick > 2 {
		r := thick / 2
		Disc(img, x0, y0, r, col)
		Disc(img, x1, y1, r, col)
	}
}

// Rect draws the border of rect. The stroke sits just inside the rectangle
// edges so a rect matching the image bounds stays fully visible.
func Rect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	Line(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	Line(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	Line(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	Line(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// FillRect fills rect with col using over compositing, so a translucent
// colour dims rather than replaces the pixels underneath.
func FillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

func circleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// Circle draws a circle outline of radius r centred at (cx, cy).
func Circle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		circleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		rr := r + start + i
		if rr >= 0 {
			circleThin(img, cx, cy, rr, col)
		}
	}
}

// Ellipse draws an ellipse outline with radii (rx, ry) centred at (cx, cy).
func Ellipse(img *image.RGBA, cx, cy, rx, ry int, col color.Color, thick int) {
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Cos(angle)*float64(rx))
		y := cy + int(math.Sin(angle)*float64(ry))
		if i > 0 {
			Line(img, prevX, prevY, x, y, col, thick)
		} else {
			setThickPixel(img, x, y, thick, col)
		}
		prevX, prevY = x, y
	}
}

// FillEllipse fills the ellipse interior using over compositing, row by
// row, so translucent fills blend with the content below.
func FillEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.Color) {
	if rx < 0 || ry < 0 {
		return
	}
	if ry == 0 {
		FillRect(img, image.Rect(cx-rx, cy, cx+rx+1, cy+1), col)
		return
	}
	src := image.NewUniform(col)
	for dy := -ry; dy <= ry; dy++ {
		span := int(float64(rx) * math.Sqrt(1.0-float64(dy*dy)/float64(ry*ry)))
		row := image.Rect(cx-span, cy+dy, cx+span+1, cy+dy+1)
		draw.Draw(img, row, src, image.Point{}, draw.Over)
	}
}

// Disc draws a filled circle of radius r centred at (cx, cy). The colour is
// written opaquely; use FillEllipse for translucent fills.
func Disc(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(img.Bounds()) {
					img.Set(px, py, col)
				}
			}
		}
	}
}

// ArrowHeadPoints returns the two back corners of a triangular arrow head
// for a shaft ending at (x1, y1). The corners sit at distance size from the
// tip, swept pi/6 either side of the shaft direction. The zero-length shaft
// has no defined direction; callers must not draw a head for it.
func ArrowHeadPoints(x0, y0, x1, y1 int, size float64) (image.Point, image.Point) {
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	a1 := angle + math.Pi/6
	a2 := angle - math.Pi/6
	p1 := image.Pt(x1-int(math.Round(math.Cos(a1)*size)), y1-int(math.Round(math.Sin(a1)*size)))
	p2 := image.Pt(x1-int(math.Round(math.Cos(a2)*size)), y1-int(math.Round(math.Sin(a2)*size)))
	return p1, p2
}

// Arrow draws a shaft from (x0, y0) to (x1, y1) with a triangular head of
// the given size at the end point. A zero-length arrow draws nothing.
func Arrow(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int, head float64) {
	if x0 == x1 && y0 == y1 {
		return
	}
	Line(img, x0, y0, x1, y1, col, thick)
	p1, p2 := ArrowHeadPoints(x0, y0, x1, y1, head)
	Line(img, x1, y1, p1.X, p1.Y, col, thick)
	Line(img, x1, y1, p2.X, p2.Y, col, thick)
}

// DashedLine draws an axis-aligned dashed segment alternating c1 and c2.
// Diagonal input falls back to a solid line in c1.
func DashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	if x0 != x1 && y0 != y1 {
		Line(img, x0, y0, x1, y1, c1, thickness)
		return
	}
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length = -length
	}
	set := func(x, y int, col color.Color) {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, col)
		}
	}
	for i := 0; i <= length; i += dash * 2 {
		for j := 0; j < dash && i+j <= length; j++ {
			for t := 0; t < thickness; t++ {
				if horiz {
					if x0 < x1 {
						set(x0+i+j, y0+t, c1)
					} else {
						set(x0-i-j, y0+t, c1)
					}
				} else {
					if y0 < y1 {
						set(x0+t, y0+i+j, c1)
					} else {
						set(x0+t, y0-i-j, c1)
					}
				}
			}
		}
		for j := 0; j < dash && i+dash+j <= length; j++ {
			for t := 0; t < thickness; t++ {
				if horiz {
					if x0 < x1 {
						set(x0+i+dash+j, y0+t, c2)
					} else {
						set(x0-i-dash-j, y0+t, c2)
					}
				} else {
					if y0 < y1 {
						set(x0+t, y0+i+dash+j, c2)
					} else {
						set(x0+t, y0-i-dash-j, c2)
					}
				}
			}
		}
	}
}

// DashedRect draws a dashed rectangle border alternating c1 and c2.
func DashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	DashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	DashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	DashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	DashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}
