package selector

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/snipmark/internal/raster"
)

// Appearance groups the overlay colours and metrics. Scrim and LabelBack
// carry straight alpha.
type Appearance struct {
	Scrim       color.RGBA
	Border      color.RGBA
	BorderWidth int
	Handle      color.RGBA
	HandleSize  int
	LabelText   color.RGBA
	LabelBack   color.RGBA
}

// DefaultAppearance returns the stock overlay look: dark translucent
// scrim, accent-blue border and handles, white-on-dark dimension label.
func DefaultAppearance() Appearance {
	return Appearance{
		Scrim:       color.RGBA{0, 0, 0, 100},
		Border:      color.RGBA{0, 122, 204, 255},
		BorderWidth: 2,
		Handle:      color.RGBA{0, 122, 204, 255},
		HandleSize:  8,
		LabelText:   color.RGBA{255, 255, 255, 255},
		LabelBack:   color.RGBA{0, 0, 0, 180},
	}
}

const (
	labelTextSize = 12.0
	labelPad      = 4
	labelGapAbove = 10
	labelGapBelow = 5
)

// scrimRects tiles the part of bounds outside sel with up to four
// rectangles. Dimming those instead of dimming everything and clearing
// the selection afterwards leaves the cutout pixels untouched, which
// matters because the scrim blend is not invertible.
func scrimRects(bounds, sel image.Rectangle) []image.Rectangle {
	cut := sel.Intersect(bounds)
	if cut.Empty() {
		return []image.Rectangle{bounds}
	}
	rects := []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, cut.Min.Y),
		image.Rect(bounds.Min.X, cut.Max.Y, bounds.Max.X, bounds.Max.Y),
		image.Rect(bounds.Min.X, cut.Min.Y, cut.Min.X, cut.Max.Y),
		image.Rect(cut.Max.X, cut.Min.Y, bounds.Max.X, cut.Max.Y),
	}
	out := rects[:0]
	for _, r := range rects {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

// dimensionLabelRect places a labelW x labelH plate for the selection:
// centered above the top edge, or flipped below the bottom edge when the
// top position would leave the surface. The result is clamped into
// bounds horizontally.
func dimensionLabelRect(sel image.Rectangle, labelW, labelH int, bounds image.Rectangle) image.Rectangle {
	x := sel.Min.X + (sel.Dx()-labelW)/2
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if x+labelW > bounds.Max.X {
		x = bounds.Max.X - labelW
	}
	y := sel.Min.Y - labelGapAbove - labelH
	if y < bounds.Min.Y {
		y = sel.Max.Y + labelGapBelow
	}
	if y+labelH > bounds.Max.Y {
		y = bounds.Max.Y - labelH
	}
	return image.Rect(x, y, x+labelW, y+labelH)
}

// DrawFrame paints one overlay frame: the frozen background, the scrim
// with the selection cut out, then border, corner handles and the
// dimension label. sel is in dst coordinates; pass hasSel false before
// the first press to scrim the whole surface.
func DrawFrame(dst *image.RGBA, background image.Image, sel image.Rectangle, hasSel bool, a Appearance) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, background, background.Bounds().Min, draw.Src)

	scrim := raster.Premultiply(a.Scrim)
	if !hasSel {
		raster.FillRect(dst, bounds, scrim)
		return
	}
	for _, r := range scrimRects(bounds, sel) {
		raster.FillRect(dst, r, scrim)
	}

	raster.Rect(dst, sel, a.Border, a.BorderWidth)

	half := a.HandleSize / 2
	corners := []image.Point{
		sel.Min,
		{sel.Max.X, sel.Min.Y},
		{sel.Min.X, sel.Max.Y},
		sel.Max,
	}
	for _, c := range corners {
		hr := image.Rect(c.X-half, c.Y-half, c.X-half+a.HandleSize, c.Y-half+a.HandleSize)
		raster.FillRect(dst, hr, a.Handle)
	}

	text := fmt.Sprintf("%d x %d", sel.Dx(), sel.Dy())
	tw, th, _, err := raster.MeasureText(text, raster.Bold, labelTextSize)
	if err != nil {
		return
	}
	plate := dimensionLabelRect(sel, tw+2*labelPad, th+2*labelPad, bounds)
	raster.FillRect(dst, plate, raster.Premultiply(a.LabelBack))
	_ = raster.Text(dst, plate.Min.X+labelPad, plate.Min.Y+labelPad, text, a.LabelText, raster.Bold, labelTextSize)
}
