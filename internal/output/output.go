// Package output persists captured images: encoding to png, jpg or bmp,
// timestamped unique filenames, and metadata for saved files.
package output

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Options select the on-disk encoding.
type Options struct {
	Format  string // "png", "jpg" or "bmp"
	Quality int    // JPEG quality 1-100; 0 means the default 95
}

// Ext returns the filename extension for the configured format, without
// the dot. Unknown formats fall back to png so a filename can always be
// built; Save still rejects them.
func (o Options) Ext() string {
	switch normalizeFormat(o.Format) {
	case "jpg":
		return "jpg"
	case "bmp":
		return "bmp"
	}
	return "png"
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "jpeg" {
		return "jpg"
	}
	return f
}

// Save encodes img to path according to opts.
func Save(img image.Image, path string, opts Options) error {
	format := normalizeFormat(opts.Format)
	switch format {
	case "", "png", "jpg", "bmp":
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	switch format {
	case "jpg":
		quality := opts.Quality
		if quality <= 0 {
			quality = 95
		}
		if quality > 100 {
			quality = 100
		}
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}

// WriteAuto saves img under dir with a timestamped name, resolving
// filename collisions, and returns the path actually written. The
// directory is created if missing; an empty dir means the working
// directory.
func WriteAuto(img image.Image, dir, prefix string, opts Options, t time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output dir %q: %w", dir, err)
	}
	path, err := UniquePath(filepath.Join(dir, Filename(prefix, opts.Format, t)))
	if err != nil {
		return "", err
	}
	if err := Save(img, path, opts); err != nil {
		return "", err
	}
	return path, nil
}
