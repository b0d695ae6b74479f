package selector

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/snipmark/internal/raster"
)

func TestScrimRectsTileOutsideSelection(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	sel := image.Rect(20, 10, 60, 50)
	rects := scrimRects(bounds, sel)

	area := 0
	for i, r := range rects {
		if !r.In(bounds) {
			t.Fatalf("rect %v escapes bounds", r)
		}
		if r.Overlaps(sel) {
			t.Fatalf("rect %v covers the selection", r)
		}
		for _, other := range rects[i+1:] {
			if r.Overlaps(other) {
				t.Fatalf("rects %v and %v overlap", r, other)
			}
		}
		area += r.Dx() * r.Dy()
	}
	want := bounds.Dx()*bounds.Dy() - sel.Dx()*sel.Dy()
	if area != want {
		t.Fatalf("covered area %d, want %d", area, want)
	}
}

func TestScrimRectsEmptySelection(t *testing.T) {
	bounds := image.Rect(0, 0, 40, 30)
	rects := scrimRects(bounds, image.Rectangle{})
	if len(rects) != 1 || rects[0] != bounds {
		t.Fatalf("expected full-bounds scrim, got %v", rects)
	}
}

func TestScrimRectsClipsSelectionToBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	sel := image.Rect(60, 20, 140, 60) // extends past the right edge
	rects := scrimRects(bounds, sel)

	cut := sel.Intersect(bounds)
	area := 0
	for _, r := range rects {
		if r.Overlaps(cut) {
			t.Fatalf("rect %v covers the visible selection", r)
		}
		area += r.Dx() * r.Dy()
	}
	want := bounds.Dx()*bounds.Dy() - cut.Dx()*cut.Dy()
	if area != want {
		t.Fatalf("covered area %d, want %d", area, want)
	}
}

func TestDimensionLabelAboveSelection(t *testing.T) {
	bounds := image.Rect(0, 0, 300, 300)
	sel := image.Rect(40, 60, 140, 120)
	got := dimensionLabelRect(sel, 50, 20, bounds)
	want := image.Rect(65, 30, 115, 50)
	if got != want {
		t.Fatalf("label rect %v, want %v", got, want)
	}
}

func TestDimensionLabelFlipsBelowWhenClipped(t *testing.T) {
	bounds := image.Rect(0, 0, 300, 300)
	sel := image.Rect(40, 15, 140, 90)
	got := dimensionLabelRect(sel, 50, 20, bounds)
	if got.Min.Y != sel.Max.Y+labelGapBelow {
		t.Fatalf("label not flipped below: %v", got)
	}
}

func TestDimensionLabelClampsHorizontally(t *testing.T) {
	bounds := image.Rect(0, 0, 300, 300)
	sel := image.Rect(0, 100, 10, 160) // narrow selection at the left edge
	got := dimensionLabelRect(sel, 80, 20, bounds)
	if got.Min.X != 0 {
		t.Fatalf("label rect %v not clamped to the left edge", got)
	}
}

func whiteBackground(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	return img
}

func TestDrawFrameScrimsEverythingWithoutSelection(t *testing.T) {
	bg := whiteBackground(60, 40)
	dst := image.NewRGBA(bg.Bounds())
	DrawFrame(dst, bg, image.Rectangle{}, false, DefaultAppearance())

	// Scrim (0,0,0,100) over white leaves an even grey.
	want := color.RGBA{155, 155, 155, 255}
	for _, p := range []image.Point{{0, 0}, {30, 20}, {59, 39}} {
		if got := dst.RGBAAt(p.X, p.Y); got != want {
			t.Fatalf("pixel %v = %+v, want %+v", p, got, want)
		}
	}
}

func TestDrawFrameCutoutKeepsBackground(t *testing.T) {
	bg := whiteBackground(200, 150)
	dst := image.NewRGBA(bg.Bounds())
	sel := image.Rect(30, 40, 90, 90)
	a := DefaultAppearance()
	DrawFrame(dst, bg, sel, true, a)

	if got := dst.RGBAAt(60, 65); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("cutout pixel dimmed: %+v", got)
	}
	if got := dst.RGBAAt(10, 10); got != (color.RGBA{155, 155, 155, 255}) {
		t.Fatalf("scrim pixel %+v, want dimmed white", got)
	}
	// Border runs along the inside of the top edge.
	if got := dst.RGBAAt(50, 40); got != a.Border {
		t.Fatalf("border pixel %+v, want %+v", got, a.Border)
	}
	// Handle squares extend outside the rectangle corners.
	if got := dst.RGBAAt(27, 37); got != a.Handle {
		t.Fatalf("handle pixel %+v, want %+v", got, a.Handle)
	}
}

func TestDrawFrameLabelPlatePainted(t *testing.T) {
	bg := whiteBackground(200, 150)
	dst := image.NewRGBA(bg.Bounds())
	sel := image.Rect(30, 40, 90, 90)
	DrawFrame(dst, bg, sel, true, DefaultAppearance())

	tw, th, _, err := raster.MeasureText("60 x 50", raster.Bold, labelTextSize)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	plate := dimensionLabelRect(sel, tw+2*labelPad, th+2*labelPad, bg.Bounds())
	// The plate corner sits over scrimmed background; (0,0,0,180) over the
	// grey leaves a near-black pixel clear of any glyph ink.
	got := dst.RGBAAt(plate.Min.X+1, plate.Min.Y+1)
	if got.A != 255 || got.R >= 100 || got.R != got.G || got.G != got.B {
		t.Fatalf("label plate pixel %+v, want dark grey", got)
	}
}
