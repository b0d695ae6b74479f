package capture

import (
	"errors"
	"image"
	"strings"
	"testing"
)

type fakeBackend struct {
	monitors    []MonitorInfo
	monitorsErr error
	img         *image.RGBA
	captureErr  error
	gotRect     image.Rectangle
	captures    int
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Monitors() ([]MonitorInfo, error) {
	if f.monitorsErr != nil {
		return nil, f.monitorsErr
	}
	return f.monitors, nil
}

func (f *fakeBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	f.gotRect = r
	f.captures++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	if f.img != nil {
		return f.img, nil
	}
	return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
}

func swapBackend(t *testing.T, b Backend) {
	t.Helper()
	original := backend
	backend = b
	t.Cleanup(func() { backend = original })
}

func dualMonitorFake() *fakeBackend {
	return &fakeBackend{monitors: []MonitorInfo{
		{Index: 0, Name: "eDP-1", X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{Index: 1, Name: "HDMI-1", X: 1920, Y: 0, Width: 1280, Height: 1024},
	}}
}

func TestCaptureScreenSpansAllMonitors(t *testing.T) {
	fake := dualMonitorFake()
	swapBackend(t, fake)

	img, err := CaptureScreen()
	if err != nil {
		t.Fatalf("CaptureScreen: %v", err)
	}
	if want := image.Rect(0, 0, 3200, 1080); fake.gotRect != want {
		t.Errorf("expected capture of %v, got %v", want, fake.gotRect)
	}
	if img == nil {
		t.Fatal("expected an image")
	}
}

func TestCaptureScreenPropagatesMonitorError(t *testing.T) {
	monErr := errors.New("monitors unavailable")
	swapBackend(t, &fakeBackend{monitorsErr: monErr})

	if _, err := CaptureScreen(); !errors.Is(err, monErr) {
		t.Fatalf("expected wrapped monitor error, got %v", err)
	}
}

func TestCaptureMonitor(t *testing.T) {
	fake := dualMonitorFake()
	swapBackend(t, fake)

	if _, err := CaptureMonitor(1); err != nil {
		t.Fatalf("CaptureMonitor: %v", err)
	}
	if want := image.Rect(1920, 0, 3200, 1024); fake.gotRect != want {
		t.Errorf("expected capture of %v, got %v", want, fake.gotRect)
	}

	if _, err := CaptureMonitor(2); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
	if _, err := CaptureMonitor(-1); err == nil {
		t.Fatal("expected error for negative index")
	}
}

func TestCaptureRectValidates(t *testing.T) {
	fake := dualMonitorFake()
	swapBackend(t, fake)

	if _, err := CaptureRect(image.Rect(100, 100, 500, 400)); err != nil {
		t.Fatalf("CaptureRect: %v", err)
	}
	if want := image.Rect(100, 100, 500, 400); fake.gotRect != want {
		t.Errorf("expected capture of %v, got %v", want, fake.gotRect)
	}

	before := fake.captures
	if _, err := CaptureRect(image.Rect(10, 10, 10, 50)); err == nil {
		t.Fatal("expected error for empty region")
	}
	if _, err := CaptureRect(image.Rect(3000, 900, 3300, 1100)); err == nil {
		t.Fatal("expected error for region outside display bounds")
	}
	if fake.captures != before {
		t.Errorf("expected no capture attempts for invalid regions, got %d", fake.captures-before)
	}
}

func TestValidateRegion(t *testing.T) {
	swapBackend(t, dualMonitorFake())

	if err := ValidateRegion(image.Rect(0, 0, 1920, 1080)); err != nil {
		t.Errorf("expected full primary monitor to validate: %v", err)
	}
	if err := ValidateRegion(image.Rectangle{}); err == nil {
		t.Error("expected error for zero rect")
	}
	if err := ValidateRegion(image.Rect(-10, 0, 100, 100)); err == nil {
		t.Error("expected error for region extending left of the layout")
	}
	// The union is 3200x1080 but the second monitor is only 1024 tall;
	// the union check deliberately accepts the dead corner.
	if err := ValidateRegion(image.Rect(2000, 1000, 3100, 1060)); err != nil {
		t.Errorf("expected union-based validation to accept %v", err)
	}
}

func TestVirtualBoundsNoMonitors(t *testing.T) {
	swapBackend(t, &fakeBackend{})

	if _, err := VirtualBounds(); !errors.Is(err, errNoMonitors) {
		t.Fatalf("expected errNoMonitors, got %v", err)
	}
}

func TestFindMonitor(t *testing.T) {
	monitors := []MonitorInfo{
		{Index: 0, Name: "eDP-1", Width: 1920, Height: 1080},
		{Index: 1, Name: "HDMI-1", X: 1920, Width: 1280, Height: 1024, Primary: true},
	}

	if got, err := FindMonitor(monitors, ""); err != nil || got.Index != 0 {
		t.Errorf("expected empty selector to pick the first monitor, got %v %v", got.Index, err)
	}
	if got, err := FindMonitor(monitors, "primary"); err != nil || got.Index != 1 {
		t.Errorf("expected primary selector to pick index 1, got %v %v", got.Index, err)
	}
	if got, err := FindMonitor(monitors, "1"); err != nil || got.Index != 1 {
		t.Errorf("expected index selector, got %v %v", got.Index, err)
	}
	if got, err := FindMonitor(monitors, "#0"); err != nil || got.Index != 0 {
		t.Errorf("expected #index selector, got %v %v", got.Index, err)
	}
	if got, err := FindMonitor(monitors, "hdmi"); err != nil || got.Index != 1 {
		t.Errorf("expected name substring selector, got %v %v", got.Index, err)
	}
	if _, err := FindMonitor(monitors, "5"); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
	if _, err := FindMonitor(monitors, "DP-9"); err == nil {
		t.Error("expected error for unknown name")
	}
	if _, err := FindMonitor(nil, "primary"); !errors.Is(err, errNoMonitors) {
		t.Errorf("expected errNoMonitors for empty list, got %v", err)
	}
}

func TestCropToRect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	src.Pix[src.PixOffset(30, 20)] = 0xAB

	crop, err := cropToRect(src, image.Rect(30, 20, 60, 50))
	if err != nil {
		t.Fatalf("cropToRect: %v", err)
	}
	if want := image.Rect(0, 0, 30, 30); crop.Bounds() != want {
		t.Errorf("expected bounds %v, got %v", want, crop.Bounds())
	}
	if crop.Pix[crop.PixOffset(0, 0)] != 0xAB {
		t.Error("expected crop origin to map to source (30,20)")
	}

	if _, err := cropToRect(src, image.Rect(200, 200, 300, 300)); err == nil {
		t.Error("expected error for crop outside the image")
	}
}
