//go:build linux || freebsd || openbsd || netbsd

package capture

import "testing"

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}

func TestDetectBackend(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	t.Setenv("DISPLAY", ":0")
	if _, ok := detectBackend().(*portalBackend); !ok {
		t.Errorf("expected portal backend on wayland, got %s", detectBackend().Name())
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if _, ok := detectBackend().(x11Backend); !ok {
		t.Errorf("expected x11 backend with DISPLAY set, got %s", detectBackend().Name())
	}

	t.Setenv("DISPLAY", "")
	if _, ok := detectBackend().(genericBackend); !ok {
		t.Errorf("expected generic backend without a display, got %s", detectBackend().Name())
	}
}
