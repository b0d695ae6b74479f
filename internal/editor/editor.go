// Package editor is the interactive annotation window: the captured
// image under a toolbar of drawing tools, with undo, clear, clipboard
// copy and disk save wired to buttons and keyboard shortcuts.
package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snipmark/internal/annotate"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/notify"
	"github.com/example/snipmark/internal/output"
	"github.com/example/snipmark/internal/raster"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/theme"
)

// Options configure an editing session. The zero value edits with the
// default style and theme and saves PNGs into the working directory.
type Options struct {
	// Source names where the image came from for the window caption,
	// eg a file path or "selection".
	Source string

	Tool     annotate.Kind
	Style    annotate.Style
	TextSize float64
	Theme    *theme.Theme

	// SavePath forces saves to one exact file. When empty, saves
	// auto-name into Dir using Prefix and the Output format.
	SavePath string
	Dir      string
	Prefix   string
	Output   output.Options

	// Shadow, when set, is applied to the composite on save.
	Shadow *render.ShadowOptions

	Notifier *notify.Notifier
	Version  string
}

// Result reports what a session produced.
type Result struct {
	// SavedPath is the last file written, empty when nothing was saved.
	SavedPath string
	// Copied reports whether the image reached the clipboard.
	Copied bool
	// Image is the final composite of base image and annotations.
	Image *image.RGBA
}

// Session is one editor window over a base image.
type Session struct {
	base     *image.RGBA
	opts     Options
	mgr      *annotate.Manager
	tool     annotate.Kind
	style    annotate.Style
	textSize float64
	theme    *theme.Theme
	notifier *notify.Notifier
}

func NewSession(base *image.RGBA, opts Options) *Session {
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	style := opts.Style
	if style == (annotate.Style{}) {
		style = annotate.DefaultStyle()
	}
	size := opts.TextSize
	if size <= 0 {
		size = annotate.DefaultTextSize
	}
	return &Session{
		base:     base,
		opts:     opts,
		mgr:      annotate.NewManager(),
		tool:     opts.Tool,
		style:    style,
		textSize: size,
		theme:    th,
		notifier: opts.Notifier,
	}
}

// Run is the one-call form. It must be called from inside driver.Main.
func Run(s screen.Screen, base *image.RGBA, opts Options) (Result, error) {
	return NewSession(base, opts).Run(s)
}

// Run drives the editor until the user quits or closes the window.
func (e *Session) Run(s screen.Screen) (Result, error) {
	bounds := e.base.Bounds()

	var (
		dragging     bool
		textTool     *annotate.Text
		textAnchor   image.Point
		lastSaved    string
		copied       bool
		message      string
		messageUntil time.Time
		quit         bool
		hover        = -1
	)

	say := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(2 * time.Second)
		log.Print(msg)
	}

	actions := map[string]func(){}

	actions["undo"] = func() {
		if textTool != nil {
			e.mgr.SetCurrent(nil)
			textTool = nil
			return
		}
		if !e.mgr.Undo() {
			say("nothing to undo")
		}
	}

	actions["clear"] = func() {
		if textTool != nil {
			e.mgr.SetCurrent(nil)
			textTool = nil
		}
		dragging = false
		e.mgr.Clear()
	}

	actions["copy"] = func() {
		if err := clipboard.WriteImage(e.compose()); err != nil {
			log.Printf("copy: %v", err)
			say("copy failed")
			return
		}
		copied = true
		say("image copied to clipboard")
		if e.notifier != nil {
			e.notifier.Copy(fmt.Sprintf("%dx%d image", bounds.Dx(), bounds.Dy()))
		}
	}

	actions["save"] = func() {
		path, err := e.save()
		if err != nil {
			log.Printf("save: %v", err)
			say("save failed")
			return
		}
		lastSaved = path
		say(fmt.Sprintf("saved %s", path))
		if e.notifier != nil {
			e.notifier.Save(path)
		}
	}

	actions["quit"] = func() { quit = true }

	trigger := func(name string) {
		if fn, ok := actions[name]; ok {
			fn()
		}
	}

	setTool := func(k annotate.Kind) {
		if dragging {
			e.mgr.SetCurrent(nil)
			dragging = false
		}
		e.tool = k
	}

	bar := newToolbar(e.theme, setTool, trigger)

	width := bounds.Dx()
	if bar.width > width {
		width = bar.width
	}
	height := bounds.Dy() + bar.height + statusHeight

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height,
		Title: windowTitle(titleInfo{
			Source:  e.opts.Source,
			Tool:    e.tool.String(),
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
			Version: e.opts.Version,
		}),
	})
	if err != nil {
		return Result{}, fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	origin := image.Pt(0, bar.height)

	finish := func() Result {
		return Result{SavedPath: lastSaved, Copied: copied, Image: e.compose()}
	}

	for {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				return finish(), nil
			}
		case size.Event:
			width = ev.WidthPx
			height = ev.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			e.paint(s, w, bar, frame{
				width: width, height: height,
				hover: hover, tool: e.tool,
				textTool: textTool, textAnchor: textAnchor,
				message: message, messageUntil: messageUntil,
			})
		case mouse.Event:
			p := image.Pt(int(ev.X), int(ev.Y))
			if p.Y < bar.height {
				idx := bar.hit(p)
				if idx != hover {
					hover = idx
					w.Send(paint.Event{})
				}
				if idx >= 0 && ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirPress {
					bar.buttons[idx].Activate()
					if quit {
						return finish(), nil
					}
					w.Send(paint.Event{})
				}
				continue
			}
			if hover != -1 {
				hover = -1
				w.Send(paint.Event{})
			}

			cp := p.Sub(origin).Add(bounds.Min)
			switch {
			case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirPress:
				if e.tool == annotate.KindText {
					if textTool == nil {
						textTool = annotate.NewText(e.style, e.textSize)
						e.mgr.SetCurrent(textTool)
					}
					// A second press moves the anchor and keeps the text.
					textTool.Start(cp)
					textAnchor = cp
					w.Send(paint.Event{})
					continue
				}
				t := annotate.New(e.tool, e.style)
				t.Start(cp)
				e.mgr.SetCurrent(t)
				dragging = true
				w.Send(paint.Event{})
			case ev.Direction == mouse.DirNone && dragging:
				if t := e.mgr.Current(); t != nil {
					t.Update(cp)
					w.Send(paint.Event{})
				}
			case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirRelease && dragging:
				if t := e.mgr.Current(); t != nil {
					t.Finish(cp)
					e.mgr.CommitCurrent()
				}
				dragging = false
				w.Send(paint.Event{})
			}
		case key.Event:
			if ev.Direction != key.DirPress {
				continue
			}
			if textTool != nil {
				switch ev.Code {
				case key.CodeReturnEnter:
					textTool.Finish(textAnchor)
					e.mgr.CommitCurrent()
					textTool = nil
					w.Send(paint.Event{})
					continue
				case key.CodeEscape:
					e.mgr.SetCurrent(nil)
					textTool = nil
					w.Send(paint.Event{})
					continue
				case key.CodeDeleteBackspace:
					if s := textTool.Text(); s != "" {
						_, n := utf8.DecodeLastRuneInString(s)
						textTool.SetText(s[:len(s)-n])
						w.Send(paint.Event{})
					}
					continue
				}
				if ev.Rune > 0 {
					textTool.SetText(textTool.Text() + string(ev.Rune))
					w.Send(paint.Event{})
				}
				continue
			}
			if ev.Code == key.CodeEscape {
				if dragging {
					e.mgr.SetCurrent(nil)
					dragging = false
					w.Send(paint.Event{})
					continue
				}
				return finish(), nil
			}
			if ev.Rune == 'c' && ev.Modifiers&key.ModControl != 0 {
				trigger("copy")
				w.Send(paint.Event{})
				continue
			}
			r := unicode.ToLower(ev.Rune)
			if k, ok := toolForRune(r); ok {
				setTool(k)
				w.Send(paint.Event{})
				continue
			}
			switch r {
			case 'u':
				trigger("undo")
				w.Send(paint.Event{})
			case 'x':
				trigger("clear")
				w.Send(paint.Event{})
			case 's':
				trigger("save")
				w.Send(paint.Event{})
			case 'q':
				return finish(), nil
			}
		}
	}
}

// toolForRune maps a tool shortcut key to its kind.
func toolForRune(r rune) (annotate.Kind, bool) {
	switch r {
	case 'a':
		return annotate.KindArrow, true
	case 'r':
		return annotate.KindRectangle, true
	case 'c':
		return annotate.KindCircle, true
	case 'l':
		return annotate.KindLine, true
	case 't':
		return annotate.KindText, true
	case 'h':
		return annotate.KindHighlighter, true
	case 'f':
		return annotate.KindFreeDraw, true
	}
	return 0, false
}

// compose flattens the base image and every annotation, committed and
// in progress, onto a fresh canvas.
func (e *Session) compose() *image.RGBA {
	out := image.NewRGBA(e.base.Bounds())
	draw.Draw(out, out.Bounds(), e.base, e.base.Bounds().Min, draw.Src)
	e.mgr.RenderAll(out)
	return out
}

// save flattens and writes the image, applying the shadow when
// configured, and returns the path written.
func (e *Session) save() (string, error) {
	img := e.compose()
	if e.opts.Shadow != nil {
		img = render.ApplyShadow(img, *e.opts.Shadow)
	}
	if e.opts.SavePath != "" {
		if err := output.Save(img, e.opts.SavePath, e.opts.Output); err != nil {
			return "", err
		}
		return e.opts.SavePath, nil
	}
	return output.WriteAuto(img, e.opts.Dir, e.opts.Prefix, e.opts.Output, time.Now())
}

// frame is the snapshot of mutable loop state one repaint needs.
type frame struct {
	width, height int
	hover         int
	tool          annotate.Kind
	textTool      *annotate.Text
	textAnchor    image.Point
	message       string
	messageUntil  time.Time
}

func (e *Session) paint(s screen.Screen, w screen.Window, bar *toolbar, st frame) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	drawCheckerboard(dst, image.Rect(0, bar.height, st.width, st.height-statusHeight), 8, e.theme)

	img := e.compose()
	origin := image.Pt(0, bar.height)
	dr := image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}
	draw.Draw(dst, dr, img, img.Bounds().Min, draw.Src)

	if st.textTool != nil {
		marker := textMarkerRect(st.textTool.Text(), st.textAnchor, e.textSize)
		raster.DashedRect(dst, marker.Sub(e.base.Bounds().Min).Add(origin), 4, 1, color.White, color.Black)
	}

	bar.draw(dst, st.width, st.tool, st.hover)

	text := statusHint(st.textTool != nil)
	if st.message != "" && time.Now().Before(st.messageUntil) {
		text = st.message
	}
	drawStatus(dst, st.width, st.height, text, e.theme)

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// textMarkerRect is the dashed entry box drawn around pending text,
// in image coordinates. The anchor is the text's top-left corner.
func textMarkerRect(text string, anchor image.Point, size float64) image.Rectangle {
	w, h, _, err := raster.MeasureText(text, raster.Bold, size)
	if err != nil || h <= 0 {
		h = int(size) + 4
	}
	if w < 40 {
		w = 40
	}
	return image.Rect(anchor.X-2, anchor.Y-2, anchor.X+w+2, anchor.Y+h+2)
}
