// Package capture grabs screen pixels and reports display geometry.
// The mechanism varies per platform: X11 via xgb, the XDG desktop
// portal on Wayland sessions, and a generic backend elsewhere. All of
// them sit behind the Backend interface so callers never branch on
// platform.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

// MonitorInfo describes one display in the virtual screen layout.
type MonitorInfo struct {
	Index   int
	Name    string
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
}

// Rect returns the monitor bounds in virtual-screen coordinates.
func (m MonitorInfo) Rect() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height)
}

// Backend is one capture mechanism: display geometry plus pixel grabs
// in virtual-screen coordinates.
type Backend interface {
	Name() string
	Monitors() ([]MonitorInfo, error)
	CaptureRect(r image.Rectangle) (*image.RGBA, error)
}

// backend is chosen per platform at startup and swapped by tests.
var backend Backend = detectBackend()

// BackendName reports which capture mechanism is active.
func BackendName() string { return backend.Name() }

var errNoMonitors = errors.New("no monitors available")

// Monitors lists the displays known to the active backend.
func Monitors() ([]MonitorInfo, error) {
	return backend.Monitors()
}

// VirtualBounds returns the union of all monitor rectangles.
func VirtualBounds() (image.Rectangle, error) {
	monitors, err := backend.Monitors()
	if err != nil {
		return image.Rectangle{}, err
	}
	if len(monitors) == 0 {
		return image.Rectangle{}, errNoMonitors
	}
	union := monitors[0].Rect()
	for _, mon := range monitors[1:] {
		union = union.Union(mon.Rect())
	}
	return union, nil
}

// CaptureScreen grabs the full virtual screen across all monitors.
func CaptureScreen() (*image.RGBA, error) {
	bounds, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	return backend.CaptureRect(bounds)
}

// CaptureMonitor grabs a single monitor by index.
func CaptureMonitor(index int) (*image.RGBA, error) {
	monitors, err := backend.Monitors()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(monitors) {
		return nil, fmt.Errorf("monitor index %d out of range", index)
	}
	return backend.CaptureRect(monitors[index].Rect())
}

// CaptureRect grabs an arbitrary region in virtual-screen coordinates.
func CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	if err := ValidateRegion(r); err != nil {
		return nil, err
	}
	return backend.CaptureRect(r)
}

// ValidateRegion rejects empty regions and regions outside the union
// of all monitors.
func ValidateRegion(r image.Rectangle) error {
	if r.Empty() {
		return fmt.Errorf("region %v is empty", r)
	}
	bounds, err := VirtualBounds()
	if err != nil {
		return err
	}
	if !r.In(bounds) {
		return fmt.Errorf("region %v outside display bounds %v", r, bounds)
	}
	return nil
}

// FindMonitor resolves a monitor selector against the provided list:
// empty picks the first, "primary" the primary, "1" or "#1" by index,
// anything else by case-insensitive name substring.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if strings.HasPrefix(sel, "#") {
		sel = sel[1:]
	}
	if idx, err := strconv.Atoi(sel); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
