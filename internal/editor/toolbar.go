package editor

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snipmark/internal/annotate"
	"github.com/example/snipmark/internal/raster"
	"github.com/example/snipmark/internal/theme"
)

const (
	toolbarHeight = 28
	statusHeight  = 20
	buttonHeight  = 24
	buttonPad     = 6
	buttonGap     = 4
)

// ButtonState describes the visual state of a toolbar button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive toolbar element. Activate performs the
// button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states, so
// repaints blit a stored image instead of re-rendering the label.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

func drawButton(dst *image.RGBA, rect image.Rectangle, label string, state ButtonState, th *theme.Theme) {
	c := th.ButtonBackground
	switch state {
	case StateHover:
		c = th.ButtonHover
	case StatePressed:
		c = th.ButtonActive
	}
	draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
	raster.Rect(dst, rect, th.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.ButtonText}, Face: basicfont.Face7x13,
		Dot: fixed.P(rect.Min.X+buttonPad, rect.Min.Y+16)}
	d.DrawString(label)
}

// ToolButton selects an annotation tool.
type ToolButton struct {
	label    string
	kind     annotate.Kind
	colors   *theme.Theme
	rect     image.Rectangle
	onSelect func(annotate.Kind)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	drawButton(dst, tb.rect, tb.label, state, tb.colors)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.kind)
	}
}

// ActionButton triggers a named editor action such as undo or save.
type ActionButton struct {
	label   string
	action  string
	colors  *theme.Theme
	rect    image.Rectangle
	trigger func(string)
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	drawButton(dst, ab.rect, ab.label, state, ab.colors)
}

func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }

func (ab *ActionButton) SetRect(r image.Rectangle) {
	if r != ab.rect {
		ab.rect = r
	}
}

func (ab *ActionButton) Activate() {
	if ab.trigger != nil {
		ab.trigger(ab.action)
	}
}

// toolbar is the single row of buttons across the top of the editor
// window: one button per tool followed by the session actions.
type toolbar struct {
	buttons []*CacheButton
	colors  *theme.Theme
	width   int
	height  int
}

func toolLabel(k annotate.Kind) string {
	switch k {
	case annotate.KindArrow:
		return "A:Arrow"
	case annotate.KindRectangle:
		return "R:Rect"
	case annotate.KindCircle:
		return "C:Circle"
	case annotate.KindLine:
		return "L:Line"
	case annotate.KindText:
		return "T:Text"
	case annotate.KindHighlighter:
		return "H:Hilite"
	case annotate.KindFreeDraw:
		return "F:Free"
	}
	return "?"
}

// newToolbar builds and lays out the button row. Each button is sized
// to its label so nothing is clipped; width is the row's natural width.
func newToolbar(th *theme.Theme, selectTool func(annotate.Kind), trigger func(string)) *toolbar {
	t := &toolbar{colors: th, height: toolbarHeight}
	for _, k := range annotate.Kinds() {
		t.buttons = append(t.buttons, &CacheButton{Button: &ToolButton{
			label: toolLabel(k), kind: k, colors: th, onSelect: selectTool,
		}})
	}
	for _, a := range []struct{ label, action string }{
		{"U:Undo", "undo"},
		{"X:Clear", "clear"},
		{"^C:Copy", "copy"},
		{"S:Save", "save"},
		{"Q:Quit", "quit"},
	} {
		t.buttons = append(t.buttons, &CacheButton{Button: &ActionButton{
			label: a.label, action: a.action, colors: th, trigger: trigger,
		}})
	}

	meas := &font.Drawer{Face: basicfont.Face7x13}
	x := buttonGap
	y := (toolbarHeight - buttonHeight) / 2
	for _, cb := range t.buttons {
		var label string
		switch b := cb.Button.(type) {
		case *ToolButton:
			label = b.label
		case *ActionButton:
			label = b.label
		}
		w := meas.MeasureString(label).Ceil() + 2*buttonPad
		cb.SetRect(image.Rect(x, y, x+w, y+buttonHeight))
		x += w + buttonGap
	}
	t.width = x
	return t
}

// hit returns the index of the button containing p, or -1.
func (t *toolbar) hit(p image.Point) int {
	for i, b := range t.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// draw paints the bar background and every button. The active tool's
// button stays pressed; hover is the index under the pointer.
func (t *toolbar) draw(dst *image.RGBA, width int, active annotate.Kind, hover int) {
	draw.Draw(dst, image.Rect(0, 0, width, t.height),
		&image.Uniform{t.colors.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range t.buttons {
		state := StateDefault
		if tb, ok := cb.Button.(*ToolButton); ok && tb.kind == active {
			state = StatePressed
		} else if i == hover {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

// drawCheckerboard fills rect with alternating squares, the backdrop
// behind any part of the window the image does not cover.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, th *theme.Theme) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, th.CheckerLight)
			} else {
				dst.Set(x, y, th.CheckerDark)
			}
		}
	}
}

// drawStatus paints the bottom bar with either a transient message or
// the shortcut hints for the current mode.
func drawStatus(dst *image.RGBA, width, height int, text string, th *theme.Theme) {
	rect := image.Rect(0, height-statusHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.ButtonText}, Face: basicfont.Face7x13,
		Dot: fixed.P(4, height-statusHeight+14)}
	d.DrawString(text)
}

func statusHint(textMode bool) string {
	if textMode {
		return "type text  Enter:place  Esc:cancel"
	}
	return "drag to draw  u:undo  x:clear  ^c:copy  s:save  q:quit"
}
