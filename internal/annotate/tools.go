package annotate

import (
	"image"

	"github.com/example/snipmark/internal/raster"
)

// Arrow draws a straight shaft with a triangular head at the release
// point. A zero-length arrow has no direction and renders nothing.
type Arrow struct {
	gesture
}

func NewArrow(style Style) *Arrow {
	return &Arrow{gesture{style: style}}
}

func (*Arrow) Kind() Kind { return KindArrow }

func (a *Arrow) Render(dst *image.RGBA) {
	if !a.started() || a.start == a.end {
		return
	}
	raster.Arrow(dst, a.start.X, a.start.Y, a.end.X, a.end.Y, a.style.Color, a.style.Thickness, arrowHeadSize)
}

// Rectangle draws the normalized bounding box of the drag. Fill mode lays
// the stroke colour at FillAlpha under a full-opacity border.
type Rectangle struct {
	gesture
}

func NewRectangle(style Style) *Rectangle {
	return &Rectangle{gesture{style: style}}
}

func (*Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Render(dst *image.RGBA) {
	if !r.started() {
		return
	}
	rect := r.rect()
	if r.style.Fill {
		fill := r.style.Color
		fill.A = r.style.FillAlpha
		raster.FillRect(dst, rect, raster.Premultiply(fill))
	}
	raster.Rect(dst, rect, r.style.Color, r.style.Thickness)
}

// Circle draws the ellipse inscribed in the normalized drag rectangle,
// with the same fill semantics as Rectangle.
type Circle struct {
	gesture
}

func NewCircle(style Style) *Circle {
	return &Circle{gesture{style: style}}
}

func (*Circle) Kind() Kind { return KindCircle }

func (c *Circle) Render(dst *image.RGBA) {
	if !c.started() {
		return
	}
	rect := c.rect()
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	rx := rect.Dx() / 2
	ry := rect.Dy() / 2
	if c.style.Fill {
		fill := c.style.Color
		fill.A = c.style.FillAlpha
		raster.FillEllipse(dst, cx, cy, rx, ry, raster.Premultiply(fill))
	}
	raster.Ellipse(dst, cx, cy, rx, ry, c.style.Color, c.style.Thickness)
}

// Line draws a single straight segment with rounded caps.
type Line struct {
	gesture
}

func NewLine(style Style) *Line {
	return &Line{gesture{style: style}}
}

func (*Line) Kind() Kind { return KindLine }

func (l *Line) Render(dst *image.RGBA) {
	if !l.started() {
		return
	}
	raster.CappedLine(dst, l.start.X, l.start.Y, l.end.X, l.end.Y, l.style.Color, l.style.Thickness)
}

// Highlighter fills the normalized drag rectangle with a translucent
// colour and no border, intended to sit over content without hiding it.
type Highlighter struct {
	gesture
}

func NewHighlighter(style Style) *Highlighter {
	// The generic default colour is opaque and would hide what it marks;
	// substitute the highlighter's own translucent default.
	if style.Color == (DefaultStyle().Color) {
		style.Color = DefaultHighlightColor
	}
	return &Highlighter{gesture{style: style}}
}

func (*Highlighter) Kind() Kind { return KindHighlighter }

func (h *Highlighter) Render(dst *image.RGBA) {
	if !h.started() {
		return
	}
	raster.FillRect(dst, h.rect(), raster.Premultiply(h.style.Color))
}

// Text renders a string anchored at the press point. The anchor never
// follows the pointer, so Update is a no-op; the string is set separately
// while the annotation is in progress.
type Text struct {
	gesture
	text string
	size float64
}

func NewText(style Style, size float64) *Text {
	if size <= 0 {
		size = DefaultTextSize
	}
	return &Text{gesture: gesture{style: style}, size: size}
}

func (*Text) Kind() Kind { return KindText }

// SetText replaces the annotation string.
func (t *Text) SetText(s string) { t.text = s }

// Text returns the current annotation string.
func (t *Text) Text() string { return t.text }

func (t *Text) Update(image.Point) {}

func (t *Text) Finish(image.Point) {
	if t.state != phaseDrawing {
		return
	}
	t.state = phaseDone
}

func (t *Text) Render(dst *image.RGBA) {
	if !t.started() || t.text == "" {
		return
	}
	_ = raster.Text(dst, t.start.X, t.start.Y, t.text, t.style.Color, raster.Bold, t.size)
}

// FreeDraw records the pointer path and renders it as connected segments
// with rounded joins.
type FreeDraw struct {
	style  Style
	state  phase
	points []image.Point
}

func NewFreeDraw(style Style) *FreeDraw {
	return &FreeDraw{style: style}
}

func (*FreeDraw) Kind() Kind { return KindFreeDraw }

func (f *FreeDraw) Start(p image.Point) {
	f.points = []image.Point{p}
	f.state = phaseDrawing
}

func (f *FreeDraw) Update(p image.Point) {
	if f.state != phaseDrawing {
		return
	}
	f.points = append(f.points, p)
}

func (f *FreeDraw) Finish(p image.Point) {
	if f.state != phaseDrawing {
		return
	}
	f.points = append(f.points, p)
	f.state = phaseDone
}

func (f *FreeDraw) Drawing() bool { return f.state == phaseDrawing }

// Points returns a copy of the recorded path.
func (f *FreeDraw) Points() []image.Point {
	out := make([]image.Point, len(f.points))
	copy(out, f.points)
	return out
}

func (f *FreeDraw) Render(dst *image.RGBA) {
	if f.state == phaseNew || len(f.points) < 2 {
		return
	}
	for i := 1; i < len(f.points); i++ {
		a := f.points[i-1]
		b := f.points[i]
		raster.CappedLine(dst, a.X, a.Y, b.X, b.Y, f.style.Color, f.style.Thickness)
	}
}
