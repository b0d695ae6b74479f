//go:build linux || freebsd || openbsd || netbsd || windows || darwin

package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// genericBackend captures through the screenshot library, which brings
// its own per-OS implementations. It is the default on Windows and
// macOS and the fallback on unix when X11 is not reachable directly.
type genericBackend struct{}

func (genericBackend) Name() string { return "generic" }

func (genericBackend) Monitors() ([]MonitorInfo, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errNoMonitors
	}
	monitors := make([]MonitorInfo, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		monitors = append(monitors, MonitorInfo{
			Index:   i,
			X:       bounds.Min.X,
			Y:       bounds.Min.Y,
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
			Primary: i == 0,
		})
	}
	return monitors, nil
}

func (genericBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	return img, nil
}
