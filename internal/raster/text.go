package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Weight selects one of the two bundled font families.
type Weight int

const (
	// Regular is the default text weight.
	Regular Weight = iota
	// Bold is used for annotation text and overlay labels.
	Bold
)

var (
	fontOnce  sync.Once
	fontErr   error
	fonts     [2]*opentype.Font
	faceCache [2]sync.Map // map[float64]font.Face
)

func loadFonts() error {
	fontOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			fontErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			fontErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		fonts[Regular] = regular
		fonts[Bold] = bold
	})
	return fontErr
}

// FaceFor returns a cached font.Face for the weight at the given point
// size. Sizes at or below zero fall back to 12pt.
func FaceFor(w Weight, size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	if size <= 0 || math.IsNaN(size) {
		size = 12
	}
	if face, ok := faceCache[w].Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(fonts[w], &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faceCache[w].Store(size, face)
	return face, nil
}

// MeasureText returns the bounding box of text at the given weight and
// size, along with the baseline offset from the top of the box.
func MeasureText(text string, w Weight, size float64) (width, height, baseline int, err error) {
	face, err := FaceFor(w, size)
	if err != nil {
		return 0, 0, 0, err
	}
	drawer := &font.Drawer{Face: face}
	width = drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baseline = ascent
	height = ascent + descent
	return
}

// Text renders text with its top-left corner at (x, y).
func Text(img *image.RGBA, x, y int, text string, col color.Color, w Weight, size float64) error {
	face, err := FaceFor(w, size)
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	baseline := y + metrics.Ascent.Ceil()
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(text)
	return nil
}
