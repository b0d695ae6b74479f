package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Loader resolves and loads the configuration, layering environment
// overrides on top of the file values.
type Loader struct {
	Version      string // build version, "dev" enables the CWD config
	OverridePath string
}

// NewLoader creates a new Loader.
func NewLoader(version, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// envFiles lists the optional dotenv files consulted before the config
// path is resolved. Swapped in tests.
var envFiles = defaultEnvFiles

func defaultEnvFiles() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".config", "snipmark", "env"),
		".env",
	}
}

// Load resolves the config file, parses it, and applies SNIPMARK_*
// environment overrides. A missing config file yields the defaults.
func (l *Loader) Load() (*Config, error) {
	l.loadEnvFiles()

	cfg := Default()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		parsed, perr := Parse(f)
		f.Close()
		if perr != nil {
			return nil, perr
		}
		cfg = parsed
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// loadEnvFiles makes dotenv values visible as process environment.
// Variables already set in the environment win over file values, which
// is godotenv's Load semantics.
func (l *Loader) loadEnvFiles() {
	for _, path := range envFiles() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: env file %s: %v", path, err)
		}
	}
}

// GetConfigPath returns the path to the configuration file, or empty
// string if none exists.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if env := os.Getenv("SNIPMARK_CONFIG"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}

	// Local run directory (dev mode).
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".snipmarkrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	for _, p := range []string{
		filepath.Join(home, ".config", "snipmark", "config.rc"),
		filepath.Join(home, ".config", "snipmark", "snipmark.rc"),
		filepath.Join("/etc", "snipmark", "config.rc"),
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SNIPMARK_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SNIPMARK_FORMAT"); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("SNIPMARK_PREFIX"); v != "" {
		cfg.Output.Prefix = v
	}
}
