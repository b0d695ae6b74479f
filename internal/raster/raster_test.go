package raster

import (
	"image"
	"image/color"
	"math"
	"testing"
)

var red = color.RGBA{255, 0, 0, 255}

func newWhite(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestLineSetsEndpointsAndInterior(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Line(img, 2, 10, 17, 10, red, 1)
	for _, x := range []int{2, 10, 17} {
		if img.RGBAAt(x, 10) != red {
			t.Errorf("pixel (%d,10) = %v, want red", x, img.RGBAAt(x, 10))
		}
	}
	if img.RGBAAt(10, 5) != (color.RGBA{}) {
		t.Errorf("pixel off the line was painted")
	}
}

func TestLineClipsOutsideBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Must not panic when the segment leaves the image.
	Line(img, -5, -5, 30, 30, red, 3)
	if img.RGBAAt(5, 5) != red {
		t.Errorf("diagonal through the image not painted")
	}
}

func TestRectDrawsBorderOnly(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Rect(img, image.Rect(4, 4, 16, 16), red, 1)
	if img.RGBAAt(4, 4) != red || img.RGBAAt(15, 15) != red {
		t.Errorf("border corners not painted")
	}
	if img.RGBAAt(10, 4) != red || img.RGBAAt(4, 10) != red {
		t.Errorf("border edges not painted")
	}
	if img.RGBAAt(10, 10) != (color.RGBA{}) {
		t.Errorf("interior painted, want untouched")
	}
}

func TestFillRectBlendsOver(t *testing.T) {
	img := newWhite(10, 10)
	FillRect(img, image.Rect(0, 0, 10, 10), color.RGBA{0, 0, 0, 100})
	got := img.RGBAAt(5, 5)
	want := color.RGBA{155, 155, 155, 255}
	if got != want {
		t.Errorf("blended pixel = %v, want %v", got, want)
	}
}

func TestArrowZeroLengthDrawsNothing(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Arrow(img, 10, 10, 10, 10, red, 2, 10)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) painted for zero-length arrow", x, y)
			}
		}
	}
}

func TestArrowHeadPointsHorizontal(t *testing.T) {
	p1, p2 := ArrowHeadPoints(0, 0, 10, 0, 10)
	if p1.Y != -p2.Y {
		t.Errorf("head corners not symmetric about the shaft: %v vs %v", p1, p2)
	}
	if p1.X != p2.X {
		t.Errorf("head corners at different depths: %v vs %v", p1, p2)
	}
	if p1.Y != -5 || p2.Y != 5 {
		t.Errorf("head corner offsets = %d,%d, want -5,5", p1.Y, p2.Y)
	}
	for _, p := range []image.Point{p1, p2} {
		d := math.Hypot(float64(10-p.X), float64(0-p.Y))
		if math.Abs(d-10) > 0.5 {
			t.Errorf("corner %v at distance %.3f from tip, want 10 within rounding", p, d)
		}
	}
}

func TestEllipseTouchesExtremes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 41, 41))
	Ellipse(img, 20, 20, 15, 10, red, 1)
	// The parametric walk can land a pixel short of the exact extreme, so
	// accept a one-pixel neighbourhood.
	nearPainted := func(x, y int) bool {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if img.RGBAAt(x+dx, y+dy) == red {
					return true
				}
			}
		}
		return false
	}
	for _, p := range []image.Point{{35, 20}, {5, 20}, {20, 30}, {20, 10}} {
		if !nearPainted(p.X, p.Y) {
			t.Errorf("extreme point %v not painted", p)
		}
	}
	if img.RGBAAt(20, 20) != (color.RGBA{}) {
		t.Errorf("ellipse centre painted, want outline only")
	}
}

func TestFillEllipseCoversInterior(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 41, 41))
	FillEllipse(img, 20, 20, 15, 10, red)
	if img.RGBAAt(20, 20) != red {
		t.Errorf("centre not filled")
	}
	if img.RGBAAt(34, 20) != red {
		t.Errorf("horizontal extreme not filled")
	}
	if img.RGBAAt(2, 2) != (color.RGBA{}) {
		t.Errorf("corner outside the ellipse filled")
	}
}

func TestDiscRespectsRadius(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 21, 21))
	Disc(img, 10, 10, 4, red)
	if img.RGBAAt(10, 10) != red || img.RGBAAt(13, 10) != red {
		t.Errorf("disc interior not painted")
	}
	if img.RGBAAt(16, 10) != (color.RGBA{}) {
		t.Errorf("pixel outside the radius painted")
	}
}

func TestTextRendersPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	if err := Text(img, 4, 4, "Wg", color.Black, Bold, 16); err != nil {
		t.Fatalf("Text: %v", err)
	}
	painted := false
	for y := 0; y < 40 && !painted; y++ {
		for x := 0; x < 120; x++ {
			if img.RGBAAt(x, y).A != 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Errorf("no pixels painted for text")
	}
	w, h, baseline, err := MeasureText("Wg", Bold, 16)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	if w <= 0 || h <= 0 || baseline <= 0 || baseline > h {
		t.Errorf("implausible metrics w=%d h=%d baseline=%d", w, h, baseline)
	}
}
