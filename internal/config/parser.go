package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader. Sections are [output],
// [capture], [tools] and [notify]; the theme key lives at the root.
// Unknown keys are skipped with a log line so newer config files keep
// working with older binaries.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)

	var section string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "output":
			err = setOutputField(&cfg.Output, key, value)
		case "capture":
			err = setCaptureField(&cfg.Capture, key, value)
		case "tools":
			err = setToolsField(&cfg.Tools, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		default:
			log.Printf("config: ignoring key %q in unknown section [%s]", key, section)
		}
		if err != nil {
			return nil, fmt.Errorf("config: section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	default:
		log.Printf("config: ignoring unknown key %q", key)
	}
	return nil
}

func setOutputField(o *Output, key, value string) error {
	switch key {
	case "dir":
		o.Dir = value
	case "prefix":
		o.Prefix = value
	case "format":
		o.Format = strings.ToLower(value)
	case "quality":
		q, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid quality: %w", err)
		}
		if q < 1 || q > 100 {
			return fmt.Errorf("quality %d out of range 1-100", q)
		}
		o.Quality = q
	default:
		log.Printf("config: ignoring unknown key %q in [output]", key)
	}
	return nil
}

func setCaptureField(c *Capture, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "auto_copy":
		c.AutoCopy = b
	case "shadow":
		c.Shadow = b
	default:
		log.Printf("config: ignoring unknown key %q in [capture]", key)
	}
	return nil
}

func setToolsField(t *Tools, key, value string) error {
	switch key {
	case "color":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color: %w", err)
		}
		t.Color = col
	case "highlight_color":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("invalid highlight_color: %w", err)
		}
		t.HighlightColor = col
	case "thickness":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid thickness: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("thickness %d must be at least 1", n)
		}
		t.Thickness = n
	case "fill":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid fill: %w", err)
		}
		t.Fill = b
	case "fill_alpha":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid fill_alpha: %w", err)
		}
		if n < 0 || n > 255 {
			return fmt.Errorf("fill_alpha %d out of range 0-255", n)
		}
		t.FillAlpha = uint8(n)
	case "text_size":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid text_size: %w", err)
		}
		if f <= 0 {
			return fmt.Errorf("text_size %g must be positive", f)
		}
		t.TextSize = f
	default:
		log.Printf("config: ignoring unknown key %q in [tools]", key)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	default:
		log.Printf("config: ignoring unknown key %q in [notify]", key)
	}
	return nil
}

// parseColor parses a hex color string. Duplicated from
// internal/theme/parser.go as it is unexported there.
func parseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
