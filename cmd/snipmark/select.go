package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"
	"strings"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/editor"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/selector"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
)

// selectCmd captures the screen, lets the user drag out a region on a
// darkened overlay, and routes the crop to the editor or straight to
// the configured sinks.
type selectCmd struct {
	out      string
	copy     bool
	annotate bool
	shadow   bool
	monitor  string
	*root
	fs *flag.FlagSet
}

func (c *selectCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseSelectCmd(args []string, r *root) (*selectCmd, error) {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	c := &selectCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	cfg := r.configuration()
	fs.StringVar(&c.out, "out", "", "write to this file path instead of the configured directory")
	fs.BoolVar(&c.copy, "copy", cfg.Capture.AutoCopy, "copy the result to the clipboard")
	fs.BoolVar(&c.annotate, "annotate", false, "open the annotation editor on the selected region")
	fs.BoolVar(&c.shadow, "shadow", cfg.Capture.Shadow, "apply a drop shadow to the result")
	fs.StringVar(&c.monitor, "monitor", "", "select within one monitor: primary, #N, or a name")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *selectCmd) Run() error {
	bg, desc, err := c.capture()
	if err != nil {
		return fmt.Errorf("capture %s: %w", desc, err)
	}
	c.notifyCapture(desc, bg)

	var (
		region    image.Rectangle
		runErr    error
		result    editor.Result
		annotated bool
	)
	driver.Main(func(s screen.Screen) {
		region, runErr = selector.Run(s, bg, c.theme)
		if runErr != nil || !c.annotate {
			return
		}
		crop := cropRGBA(bg, region)
		result, runErr = editor.Run(s, crop, c.editorOptions(desc, c.out, c.shadow))
		annotated = true
	})
	if errors.Is(runErr, selector.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "selection cancelled")
		return nil
	}
	if runErr != nil {
		return runErr
	}

	img := cropRGBA(bg, region)
	if annotated && result.Image != nil {
		img = result.Image
	}
	saved := result.SavedPath
	if saved == "" {
		if c.shadow {
			img = render.ApplyShadow(img, shadowOptions(c.outputOptions(c.out)))
		}
		saved, err = c.saveImage(img, c.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		c.notifySave(saved)
	}
	if c.copy && !result.Copied {
		detail := fmt.Sprintf("%dx%d image", img.Bounds().Dx(), img.Bounds().Dy())
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		c.notifyCopy(detail)
	}
	if c.root != nil && c.verbose {
		reportFile(saved)
	}
	return nil
}

func (c *selectCmd) capture() (*image.RGBA, string, error) {
	sel := strings.TrimSpace(c.monitor)
	if sel == "" {
		img, err := captureScreenFn()
		return img, "screen", err
	}
	monitors, err := monitorsFn()
	if err != nil {
		return nil, "monitor " + sel, err
	}
	mon, err := capture.FindMonitor(monitors, sel)
	if err != nil {
		return nil, "monitor " + sel, err
	}
	img, err := captureMonitorFn(mon.Index)
	return img, "monitor " + monitorLabel(mon), err
}

// cropRGBA copies the region of src into a fresh image anchored at the
// origin, clamped to the source bounds.
func cropRGBA(src *image.RGBA, region image.Rectangle) *image.RGBA {
	region = region.Canon().Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(dst, dst.Bounds(), src, region.Min, draw.Src)
	return dst
}
