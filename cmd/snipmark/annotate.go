package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/editor"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	_ "golang.org/x/image/bmp"
)

// annotateCmd opens the markup editor on an existing image, or on a
// fresh full-screen capture when no file is named. Nothing is written
// unless the user saves from inside the editor.
type annotateCmd struct {
	file string
	out  string
	copy bool
	*root
	fs *flag.FlagSet
}

func (c *annotateCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	c := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.out, "out", "", "save to this file path when saving from the editor")
	fs.BoolVar(&c.copy, "copy", false, "copy the result to the clipboard when the editor closes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *annotateCmd) Run() error {
	var (
		img    *image.RGBA
		source string
		err    error
	)
	if c.file != "" {
		img, err = loadImage(c.file)
		if err != nil {
			return fmt.Errorf("open %s: %w", c.file, err)
		}
		source = filepath.Base(c.file)
	} else {
		img, err = captureScreenFn()
		if err != nil {
			return fmt.Errorf("capture screen: %w", err)
		}
		source = "screen"
		c.notifyCapture(source, img)
	}

	var (
		result editor.Result
		runErr error
	)
	driver.Main(func(s screen.Screen) {
		result, runErr = editor.Run(s, img, c.editorOptions(source, c.out, c.configuration().Capture.Shadow))
	})
	if runErr != nil {
		return runErr
	}

	if c.copy && !result.Copied && result.Image != nil {
		detail := fmt.Sprintf("%dx%d image", result.Image.Bounds().Dx(), result.Image.Bounds().Dy())
		if err := clipboard.WriteImage(result.Image); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		c.notifyCopy(detail)
	}
	if c.root != nil && c.verbose && result.SavedPath != "" {
		reportFile(result.SavedPath)
	}
	return nil
}

// loadImage decodes a PNG, JPEG or BMP file into an RGBA surface.
func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba, nil
}
