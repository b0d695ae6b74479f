package selector

import (
	"errors"
	"fmt"
	"image"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snipmark/internal/theme"
)

// ErrCancelled reports that the user aborted the selection session.
var ErrCancelled = errors.New("selection cancelled")

// Session is one modal overlay run: a window showing a frozen capture on
// which a single drag picks the region of interest.
type Session struct {
	Background *image.RGBA
	Appearance Appearance
	Title      string
}

func NewSession(bg *image.RGBA, a Appearance) *Session {
	return &Session{Background: bg, Appearance: a}
}

// Run is the one-call form: a session over bg styled by th.
func Run(s screen.Screen, bg *image.RGBA, th *theme.Theme) (image.Rectangle, error) {
	return NewSession(bg, AppearanceFromTheme(th)).Run(s)
}

// AppearanceFromTheme maps theme colours onto the overlay appearance.
// A nil theme yields the defaults.
func AppearanceFromTheme(t *theme.Theme) Appearance {
	if t == nil {
		return DefaultAppearance()
	}
	a := DefaultAppearance()
	a.Scrim = t.Scrim
	a.Border = t.SelectionBorder
	a.Handle = t.SelectionHandle
	a.LabelText = t.LabelText
	a.LabelBack = t.LabelBack
	return a
}

// Run drives the overlay until the user completes or aborts a drag. The
// returned rectangle is relative to the top-left of the background.
// Right click, Escape or closing the window yields ErrCancelled. Run
// must be called from inside driver.Main.
func (o *Session) Run(s screen.Screen) (image.Rectangle, error) {
	bounds := o.Background.Bounds()
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Title:  o.Title,
	})
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	sel := New()
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				sel.Cancel()
				return image.Rectangle{}, ErrCancelled
			}
		case size.Event:
			w.Send(paint.Event{})
		case paint.Event:
			o.paint(s, w, sel)
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			// Cancellation is checked first so a right click aborts even
			// mid-drag.
			if e.Button == mouse.ButtonRight && e.Direction == mouse.DirPress {
				sel.Cancel()
				return image.Rectangle{}, ErrCancelled
			}
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				sel.Begin(p)
				w.Send(paint.Event{})
			case e.Direction == mouse.DirNone && sel.Selecting():
				sel.Move(p)
				w.Send(paint.Event{})
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				if r, ok := sel.Release(p); ok {
					return r, nil
				}
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Code == key.CodeEscape && e.Direction == key.DirPress {
				sel.Cancel()
				return image.Rectangle{}, ErrCancelled
			}
		}
	}
}

func (o *Session) paint(s screen.Screen, w screen.Window, sel *Selector) {
	b, err := s.NewBuffer(image.Point{o.Background.Bounds().Dx(), o.Background.Bounds().Dy()})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	r, ok := sel.Rect()
	DrawFrame(b.RGBA(), o.Background, r, ok, o.Appearance)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
