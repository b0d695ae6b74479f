//go:build linux || freebsd || openbsd || netbsd

package capture

import (
	"os"
	"strings"
)

func detectBackend() Backend {
	if runningOnWayland() {
		return newPortalBackend()
	}
	if os.Getenv("DISPLAY") != "" {
		return x11Backend{}
	}
	return genericBackend{}
}

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}
