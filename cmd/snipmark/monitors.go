package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/example/snipmark/internal/capture"
)

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := monitorsFn()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "capture backend: %s\n", capture.BackendName())
	if len(monitors) == 0 {
		fmt.Fprintln(os.Stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "available monitors (* marks the primary):")
	for _, mon := range monitors {
		marker := " "
		if mon.Primary {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %d: %-12s %dx%d at %d,%d\n", marker, mon.Index, monitorLabel(mon), mon.Width, mon.Height, mon.X, mon.Y)
	}
	fmt.Fprintln(os.Stdout, "selectors: primary, #<n>, or a name substring")
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func monitorLabel(m capture.MonitorInfo) string {
	if strings.TrimSpace(m.Name) != "" {
		return m.Name
	}
	return "monitor-" + strconv.Itoa(m.Index)
}
