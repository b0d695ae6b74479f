package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/render"
)

// Capture entry points, swapped in tests.
var (
	captureScreenFn  = capture.CaptureScreen
	captureMonitorFn = capture.CaptureMonitor
	captureRectFn    = capture.CaptureRect
	monitorsFn       = capture.Monitors
)

// snapCmd captures without any interaction: the whole virtual screen,
// one monitor, or a fixed region.
type snapCmd struct {
	mode    string
	monitor string
	region  string
	out     string
	copy    bool
	shadow  bool
	*root
	fs *flag.FlagSet
}

func (c *snapCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseSnapCmd(args []string, r *root) (*snapCmd, error) {
	fs := flag.NewFlagSet("snap", flag.ExitOnError)
	c := &snapCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	cfg := r.configuration()
	fs.StringVar(&c.mode, "mode", "", "capture mode: screen, monitor, or region")
	fs.StringVar(&c.monitor, "monitor", "", "monitor selector: primary, #N, or a name")
	fs.StringVar(&c.region, "region", "", `capture rectangle as "X,Y WxH" in virtual-screen coordinates`)
	fs.StringVar(&c.out, "out", "", "write to this file path instead of the configured directory")
	fs.BoolVar(&c.copy, "copy", cfg.Capture.AutoCopy, "copy the result to the clipboard")
	fs.BoolVar(&c.shadow, "shadow", cfg.Capture.Shadow, "apply a drop shadow to the result")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	operands := fs.Args()
	if strings.TrimSpace(c.mode) == "" {
		if len(operands) == 0 {
			c.mode = "screen"
		} else {
			c.mode = strings.ToLower(strings.TrimSpace(operands[0]))
			operands = operands[1:]
		}
	} else {
		c.mode = strings.ToLower(strings.TrimSpace(c.mode))
	}
	if len(operands) > 0 {
		arg := strings.TrimSpace(strings.Join(operands, " "))
		switch c.mode {
		case "monitor":
			if c.monitor == "" {
				c.monitor = arg
			}
		case "region":
			if c.region == "" {
				c.region = arg
			}
		default:
			return nil, &UsageError{of: c}
		}
	}
	switch c.mode {
	case "screen":
	case "monitor":
		if strings.TrimSpace(c.monitor) == "" {
			return nil, fmt.Errorf("monitor mode requires a selector")
		}
	case "region":
		if _, err := parseRegion(c.region); err != nil {
			return nil, err
		}
	default:
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *snapCmd) Run() error {
	img, desc, err := c.capture()
	if err != nil {
		return fmt.Errorf("capture %s: %w", desc, err)
	}
	if c.shadow {
		img = render.ApplyShadow(img, shadowOptions(c.outputOptions(c.out)))
	}
	c.notifyCapture(desc, img)

	saved, err := c.saveImage(img, c.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	c.notifySave(saved)

	if c.copy {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", desc)
		c.notifyCopy(desc)
	}
	if c.root != nil && c.verbose {
		fmt.Fprintf(os.Stderr, "captured %s: %dx%d\n", desc, img.Bounds().Dx(), img.Bounds().Dy())
		reportFile(saved)
	}
	return nil
}

func (c *snapCmd) capture() (*image.RGBA, string, error) {
	switch c.mode {
	case "screen":
		img, err := captureScreenFn()
		return img, "screen", err
	case "monitor":
		sel := strings.TrimSpace(c.monitor)
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
	case "region":
		rect, err := parseRegion(c.region)
		if err != nil {
			return nil, "region", err
		}
		desc := fmt.Sprintf("region %s", strings.TrimSpace(c.region))
		img, err := captureRectFn(rect)
		return img, desc, err
	}
	return nil, c.mode, fmt.Errorf("unsupported capture mode %q", c.mode)
}

// parseRegion reads a rectangle written as "X,Y WxH". X and Y may be
// negative on multi-monitor layouts; the size must be positive.
func parseRegion(val string) (image.Rectangle, error) {
	fields := strings.Fields(strings.TrimSpace(val))
	if len(fields) != 2 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q, want \"X,Y WxH\"", val)
	}
	x, y, err := splitPair(fields[0], ",")
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid region origin %q", fields[0])
	}
	w, h, err := splitPair(fields[1], "x")
	if err != nil || w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid region size %q", fields[1])
	}
	return image.Rect(x, y, x+w, y+h), nil
}

func splitPair(val, sep string) (int, int, error) {
	parts := strings.Split(val, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two values in %q", val)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
