package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/snipmark/internal/config"
)

// configCmd prints the active configuration or writes it back to disk
// so every key is visible and editable.
type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runPrint() error {
	fmt.Print(c.configuration().String())
	return nil
}

func (c *configCmd) runSave() error {
	loader := c.loader
	if loader == nil {
		loader = config.NewLoader(version, c.configPath)
	}
	path := loader.GetConfigPath()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "snipmark", "config.rc")
	}
	if err := c.configuration().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "configuration saved to %s\n", path)
	return nil
}
