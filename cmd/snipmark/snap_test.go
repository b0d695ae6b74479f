package main

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/config"
)

func TestParseRegion(t *testing.T) {
	cases := []struct {
		in   string
		want image.Rectangle
		ok   bool
	}{
		{"0,0 1920x1080", image.Rect(0, 0, 1920, 1080), true},
		{"100,200 800x600", image.Rect(100, 200, 900, 800), true},
		{"-1920,0 1920x1080", image.Rect(-1920, 0, 0, 1080), true},
		{"  10,20 30x40  ", image.Rect(10, 20, 40, 60), true},
		{"10,20 0x50", image.Rectangle{}, false},
		{"10,20 50x-1", image.Rectangle{}, false},
		{"10 20 300x200", image.Rectangle{}, false},
		{"10,20", image.Rectangle{}, false},
		{"1,2 3x4 junk", image.Rectangle{}, false},
		{"a,b cxd", image.Rectangle{}, false},
		{"", image.Rectangle{}, false},
	}
	for _, tc := range cases {
		got, err := parseRegion(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("parseRegion(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("parseRegion(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseSnapCmdModes(t *testing.T) {
	cmd, err := parseSnapCmd(nil, nil)
	if err != nil {
		t.Fatalf("default parse: %v", err)
	}
	if cmd.mode != "screen" {
		t.Fatalf("default mode = %q, want screen", cmd.mode)
	}

	cmd, err = parseSnapCmd([]string{"region", "10,20 300x200"}, nil)
	if err != nil {
		t.Fatalf("region parse: %v", err)
	}
	if cmd.mode != "region" || cmd.region != "10,20 300x200" {
		t.Fatalf("region parse = %q %q", cmd.mode, cmd.region)
	}

	cmd, err = parseSnapCmd([]string{"-mode", "monitor", "primary"}, nil)
	if err != nil {
		t.Fatalf("monitor parse: %v", err)
	}
	if cmd.monitor != "primary" {
		t.Fatalf("monitor selector = %q, want primary", cmd.monitor)
	}

	if _, err := parseSnapCmd([]string{"monitor"}, nil); err == nil {
		t.Fatalf("expected error for monitor mode without selector")
	}
	if _, err := parseSnapCmd([]string{"region", "nonsense"}, nil); err == nil {
		t.Fatalf("expected error for malformed region")
	}
	if _, err := parseSnapCmd([]string{"teleport"}, nil); err == nil {
		t.Fatalf("expected usage error for unknown mode")
	}
	if _, err := parseSnapCmd([]string{"screen", "extra"}, nil); err == nil {
		t.Fatalf("expected usage error for stray operand")
	}
}

func TestSnapRunWritesExplicitPath(t *testing.T) {
	original := captureScreenFn
	captureScreenFn = func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 12, 8)), nil
	}
	t.Cleanup(func() { captureScreenFn = original })

	out := filepath.Join(t.TempDir(), "shot.png")
	cmd := &snapCmd{mode: "screen", out: out, root: &root{}}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestSnapRunAutoNamesFromConfig(t *testing.T) {
	original := captureScreenFn
	captureScreenFn = func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
	}
	t.Cleanup(func() { captureScreenFn = original })

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = dir
	cfg.Output.Prefix = "snaptest"
	cmd := &snapCmd{mode: "screen", root: &root{config: cfg}}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "snaptest_") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected file name %q", name)
	}
}

func TestSnapCaptureMonitorByName(t *testing.T) {
	restoreMonitors := monitorsFn
	monitorsFn = func() ([]capture.MonitorInfo, error) {
		return []capture.MonitorInfo{
			{Index: 0, Name: "eDP-1", Width: 1920, Height: 1080, Primary: true},
			{Index: 1, Name: "HDMI-1", X: 1920, Width: 2560, Height: 1440},
		}, nil
	}
	t.Cleanup(func() { monitorsFn = restoreMonitors })

	var captured int
	restoreCapture := captureMonitorFn
	captureMonitorFn = func(index int) (*image.RGBA, error) {
		captured = index
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	}
	t.Cleanup(func() { captureMonitorFn = restoreCapture })

	cmd := &snapCmd{mode: "monitor", monitor: "hdmi", root: &root{}}
	img, desc, err := cmd.capture()
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if captured != 1 {
		t.Fatalf("captured monitor %d, want 1", captured)
	}
	if img == nil {
		t.Fatalf("expected image")
	}
	if want := "monitor HDMI-1"; desc != want {
		t.Fatalf("desc = %q, want %q", desc, want)
	}
}
