// Package config reads and writes the application's RC-format
// configuration: output location and format, capture behaviour,
// annotation tool defaults and notification switches.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/snipmark/internal/annotate"
)

// Output controls where and how captures are written.
type Output struct {
	Dir     string
	Prefix  string
	Format  string
	Quality int
}

// Capture controls post-capture behaviour.
type Capture struct {
	AutoCopy bool
	Shadow   bool
}

// Tools holds the annotation defaults applied when the editor opens.
type Tools struct {
	Color          color.RGBA
	Thickness      int
	Fill           bool
	FillAlpha      uint8
	HighlightColor color.RGBA
	TextSize       float64
}

// Style converts the tool defaults to an annotation style.
func (t Tools) Style() annotate.Style {
	return annotate.Style{
		Color:     t.Color,
		Thickness: t.Thickness,
		Fill:      t.Fill,
		FillAlpha: t.FillAlpha,
	}
}

// Notify enables desktop notifications per event.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	Output  Output
	Capture Capture
	Tools   Tools
	Notify  Notify
}

// Default returns the full default configuration tree.
func Default() *Config {
	home, _ := os.UserHomeDir()
	style := annotate.DefaultStyle()
	return &Config{
		Output: Output{
			Dir:     filepath.Join(home, "Pictures", "Screenshots"),
			Prefix:  "screenshot",
			Format:  "png",
			Quality: 95,
		},
		Capture: Capture{
			AutoCopy: true,
		},
		Tools: Tools{
			Color:          style.Color,
			Thickness:      style.Thickness,
			FillAlpha:      style.FillAlpha,
			HighlightColor: annotate.DefaultHighlightColor,
			TextSize:       annotate.DefaultTextSize,
		},
	}
}

// String renders the configuration in RC format, parseable by Parse.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n\n", c.Theme)
	}

	sb.WriteString("[output]\n")
	fmt.Fprintf(&sb, "dir = %s\n", c.Output.Dir)
	fmt.Fprintf(&sb, "prefix = %s\n", c.Output.Prefix)
	fmt.Fprintf(&sb, "format = %s\n", c.Output.Format)
	fmt.Fprintf(&sb, "quality = %d\n", c.Output.Quality)
	sb.WriteString("\n[capture]\n")
	fmt.Fprintf(&sb, "auto_copy = %v\n", c.Capture.AutoCopy)
	fmt.Fprintf(&sb, "shadow = %v\n", c.Capture.Shadow)
	sb.WriteString("\n[tools]\n")
	fmt.Fprintf(&sb, "color = %s\n", toHex(c.Tools.Color))
	fmt.Fprintf(&sb, "thickness = %d\n", c.Tools.Thickness)
	fmt.Fprintf(&sb, "fill = %v\n", c.Tools.Fill)
	fmt.Fprintf(&sb, "fill_alpha = %d\n", c.Tools.FillAlpha)
	fmt.Fprintf(&sb, "highlight_color = %s\n", toHex(c.Tools.HighlightColor))
	fmt.Fprintf(&sb, "text_size = %g\n", c.Tools.TextSize)
	sb.WriteString("\n[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}

// Save writes the configuration back to path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	body := "# snipmark configuration\n# Regenerate defaults with: snipmark config save\n\n" + c.String()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
