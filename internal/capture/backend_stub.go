//go:build !(linux || freebsd || openbsd || netbsd || windows || darwin)

package capture

import (
	"fmt"
	"image"
)

type unsupportedBackend struct{}

func detectBackend() Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Name() string { return "unsupported" }

func (unsupportedBackend) Monitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}

func (unsupportedBackend) CaptureRect(image.Rectangle) (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}
