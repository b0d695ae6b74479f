package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed themes/*.rc
var embedded embed.FS

// Loader resolves theme names against the embedded defaults and the
// usual on-disk locations.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader with the standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "snipmark", "themes"),
		SystemDir: "/usr/share/snipmark/themes",
	}
}

// Load resolves a theme by name or path. Order:
// 1. An existing file path is loaded directly.
// 2. Embedded themes.
// 3. ConfigDir.
// 4. SystemDir.
// An empty name yields the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || name == "default" {
		return Default(), nil
	}

	if _, err := os.Stat(name); err == nil {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	filename := name
	if !strings.HasSuffix(filename, ".rc") {
		filename += ".rc"
	}

	if f, err := embedded.Open("themes/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}

	configPath := filepath.Join(l.ConfigDir, filename)
	if _, err := os.Stat(configPath); err == nil {
		f, err := os.Open(configPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	systemPath := filepath.Join(l.SystemDir, filename)
	if _, err := os.Stat(systemPath); err == nil {
		f, err := os.Open(systemPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	return nil, fmt.Errorf("theme %q not found", name)
}
