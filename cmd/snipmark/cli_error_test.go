package main

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/example/snipmark/internal/capture"
)

func TestSnapRunCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("boom")
	captureScreenFn = func() (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })

	cmd := &snapCmd{mode: "screen", root: &root{}}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestSnapRunMonitorNotFound(t *testing.T) {
	original := monitorsFn
	monitorsFn = func() ([]capture.MonitorInfo, error) {
		return []capture.MonitorInfo{{Index: 0, Name: "eDP-1", Width: 1920, Height: 1080, Primary: true}}, nil
	}
	t.Cleanup(func() { monitorsFn = original })

	cmd := &snapCmd{mode: "monitor", monitor: "hdmi", root: &root{}}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "not found"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestAnnotateRunCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("denied")
	captureScreenFn = func() (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })

	cmd := &annotateCmd{root: &root{}}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected message context, got %v", err)
	}
}

func TestAnnotateRunOpenError(t *testing.T) {
	cmd := &annotateCmd{file: "missing.png", root: &root{}}
	err := cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "open missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}

func TestDrawRunOpenError(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-in", "missing.png", "line", "0,0", "5,5"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "open missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}

func TestSelectRunCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("portal offline")
	captureScreenFn = func() (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })

	cmd := &selectCmd{root: &root{}}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}
