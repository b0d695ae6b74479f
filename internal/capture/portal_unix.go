//go:build linux || freebsd || openbsd || netbsd

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

// portalBackend goes through org.freedesktop.portal.Screenshot, the
// only sanctioned capture path on Wayland. The portal hands back a
// full-desktop PNG, so region grabs are crops of a full grab. When the
// portal itself is missing the fallback backend takes over.
type portalBackend struct {
	fallback Backend
}

func newPortalBackend() *portalBackend {
	return &portalBackend{fallback: genericBackend{}}
}

func (p *portalBackend) Name() string { return "portal" }

// Monitors delegates to the fallback: the portal has no geometry API,
// and display enumeration works under XWayland.
func (p *portalBackend) Monitors() ([]MonitorInfo, error) {
	return p.fallback.Monitors()
}

func (p *portalBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	img, err := portalGrabFn()
	if err != nil {
		if isPortalUnsupported(err) {
			log.Printf("portal unavailable, using %s backend: %v", p.fallback.Name(), err)
			return p.fallback.CaptureRect(r)
		}
		return nil, err
	}
	return cropToRect(img, r)
}

// portalGrabFn is swapped in tests.
var portalGrabFn = portalGrab

// portalGrab performs the Screenshot call and waits for the Response
// signal carrying the image URI.
func portalGrab() (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	call := obj.Call("org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalOptions())
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for sig := range sigc {
		if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
			continue
		}
		if len(sig.Body) >= 2 {
			res, ok := sig.Body[1].(map[string]dbus.Variant)
			if ok {
				if uriVar, ok := res["uri"]; ok {
					uri, _ := uriVar.Value().(string)
					return loadPortalPNG(strings.TrimPrefix(uri, "file://"))
				}
			}
		}
		break
	}
	return nil, fmt.Errorf("portal screenshot: response missing image data")
}

// portalHandleToken is swapped in tests.
var portalHandleToken = newPortalHandleToken

func newPortalHandleToken() string {
	return fmt.Sprintf("snipmark-%d", time.Now().UnixNano())
}

func portalOptions() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"interactive":  dbus.MakeVariant(false),
		"modal":        dbus.MakeVariant(false),
		"cursor_mode":  dbus.MakeVariant("hidden"),
	}
}

// isPortalUnsupported reports whether err means the portal service
// cannot serve screenshots at all, as opposed to a failed attempt.
func isPortalUnsupported(err error) bool {
	var dbusErr *dbus.Error
	if !errors.As(err, &dbusErr) {
		return false
	}
	switch dbusErr.Name {
	case "org.freedesktop.portal.Error.NotSupported",
		"org.freedesktop.DBus.Error.ServiceUnknown",
		"org.freedesktop.DBus.Error.Disconnected":
		return true
	}
	return false
}

// loadPortalPNG decodes the portal's temp file and removes it.
func loadPortalPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", path, err)
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
