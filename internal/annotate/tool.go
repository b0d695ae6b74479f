// Package annotate implements the drawing tools used to mark up captured
// images: arrow, rectangle, circle, line, text, highlighter and freehand,
// plus the Manager that owns the committed annotations and composites them
// onto a surface in z-order.
package annotate

import (
	"image"
	"image/color"
)

// Kind identifies one of the seven annotation tool variants.
type Kind int

const (
	KindArrow Kind = iota
	KindRectangle
	KindCircle
	KindLine
	KindText
	KindHighlighter
	KindFreeDraw
)

func (k Kind) String() string {
	switch k {
	case KindArrow:
		return "arrow"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindHighlighter:
		return "highlighter"
	case KindFreeDraw:
		return "freedraw"
	}
	return "unknown"
}

// Kinds returns every tool kind in display order.
func Kinds() []Kind {
	return []Kind{KindArrow, KindRectangle, KindCircle, KindLine, KindText, KindHighlighter, KindFreeDraw}
}

// ParseKind maps a tool name to its Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Style describes how a tool strokes and fills. Color carries straight
// (non-premultiplied) alpha; rendering premultiplies where needed.
type Style struct {
	Color     color.RGBA
	Thickness int
	Fill      bool
	FillAlpha uint8
}

// DefaultStyle returns the stock annotation style: a red two-pixel stroke
// with fills at alpha 100 when enabled.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{255, 0, 0, 255}, Thickness: 2, FillAlpha: 100}
}

// DefaultHighlightColor is the stock highlighter colour, translucent yellow.
var DefaultHighlightColor = color.RGBA{255, 255, 0, 80}

const (
	// DefaultTextSize is the point size for text annotations.
	DefaultTextSize = 16.0
	// arrowHeadSize is the distance from the arrow tip to the two back
	// corners of the head.
	arrowHeadSize = 10.0
)

// Tool is the contract shared by every annotation variant. A tool is
// driven through Start, zero or more Updates, and Finish; Render paints
// its current state and never mutates it. Render before Start is a no-op.
type Tool interface {
	Kind() Kind
	Start(p image.Point)
	Update(p image.Point)
	Finish(p image.Point)
	Drawing() bool
	Render(dst *image.RGBA)
}

// phase tracks the tool lifecycle explicitly so that out-of-order calls
// (Update before Start, mutation after Finish) are rejected rather than
// silently corrupting state.
type phase int

const (
	phaseNew phase = iota
	phaseDrawing
	phaseDone
)

// gesture holds the anchor pair and lifecycle shared by the shape tools.
type gesture struct {
	style Style
	state phase
	start image.Point
	end   image.Point
}

func (g *gesture) Start(p image.Point) {
	g.start = p
	g.end = p
	g.state = phaseDrawing
}

func (g *gesture) Update(p image.Point) {
	if g.state != phaseDrawing {
		return
	}
	g.end = p
}

func (g *gesture) Finish(p image.Point) {
	if g.state != phaseDrawing {
		return
	}
	g.end = p
	g.state = phaseDone
}

func (g *gesture) Drawing() bool { return g.state == phaseDrawing }

func (g *gesture) started() bool { return g.state != phaseNew }

// rect returns the normalized rectangle spanned by the anchor pair, so a
// drag in any diagonal direction yields the same region.
func (g *gesture) rect() image.Rectangle {
	return image.Rect(g.start.X, g.start.Y, g.end.X, g.end.Y)
}

// New constructs a tool of the given kind. Text tools take the default
// text size; use NewText to choose another.
func New(kind Kind, style Style) Tool {
	switch kind {
	case KindArrow:
		return NewArrow(style)
	case KindRectangle:
		return NewRectangle(style)
	case KindCircle:
		return NewCircle(style)
	case KindLine:
		return NewLine(style)
	case KindText:
		return NewText(style, DefaultTextSize)
	case KindHighlighter:
		return NewHighlighter(style)
	case KindFreeDraw:
		return NewFreeDraw(style)
	}
	return nil
}
