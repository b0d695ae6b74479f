package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/snipmark/internal/annotate"
	"github.com/example/snipmark/internal/config"
	"github.com/example/snipmark/internal/editor"
	"github.com/example/snipmark/internal/notify"
	"github.com/example/snipmark/internal/output"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/theme"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type runnable interface{ Run() error }

type root struct {
	fs      *flag.FlagSet
	program string

	configPath string
	verbose    bool
	themeName  string

	loader   *config.Loader
	config   *config.Config
	notifier *notify.Notifier
	theme    *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

// subcommand derives the shared state for a child command, so help and
// messages name the full command path.
func (r *root) subcommand(name string) *root {
	if r == nil {
		return &root{program: strings.TrimSpace("snipmark " + name)}
	}
	return &root{
		program:    strings.TrimSpace(strings.Join([]string{r.program, name}, " ")),
		configPath: r.configPath,
		verbose:    r.verbose,
		loader:     r.loader,
		config:     r.config,
		notifier:   r.notifier,
		theme:      r.theme,
	}
}

// configuration never returns nil, so command bodies can read settings
// without guarding partially wired roots.
func (r *root) configuration() *config.Config {
	if r == nil || r.config == nil {
		return config.Default()
	}
	return r.config
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("snipmark", flag.ExitOnError),
		program: "snipmark",
	}
	r.fs.StringVar(&r.configPath, "config", "", "path to an alternate configuration file")
	r.fs.BoolVar(&r.verbose, "verbose", false, "print extra detail about what the command did")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme: light, dark, or a path to a theme file")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}

	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}
	r.config = cfg

	r.notifier = notify.New(notify.LoadPreferences())
	r.notifier.Enable(notify.EventCapture, cfg.Notify.Capture)
	r.notifier.Enable(notify.EventSave, cfg.Notify.Save)
	r.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)

	// Precedence: flag, environment, config file.
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("SNIPMARK_THEME")
	}
	if themeName == "" {
		themeName = cfg.Theme
	}
	th, err := theme.NewLoader().Load(themeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: theme %q: %v, using default\n", themeName, err)
		th = theme.Default()
	}
	r.theme = th

	if cfg.Tools.HighlightColor.A != 0 {
		annotate.DefaultHighlightColor = cfg.Tools.HighlightColor
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "select":
		cmd, err = parseSelectCmd(subArgs, r.subcommand(cmdName))
	case "snap":
		cmd, err = parseSnapCmd(subArgs, r.subcommand(cmdName))
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r.subcommand(cmdName))
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r.subcommand(cmdName))
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r.subcommand(cmdName))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand(cmdName))
	case "version":
		cmd, err = parseVersionCmd(subArgs, r.subcommand(cmdName))
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func (r *root) notifyCapture(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Capture(detail, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

// formatForPath derives the output format from an explicit path's
// extension, keeping the configured format when the extension is not a
// supported one.
func formatForPath(path, fallback string) string {
	switch e := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); e {
	case "png", "jpg", "jpeg", "bmp":
		return e
	}
	return fallback
}

// outputOptions is the configured encoding, optionally overridden by
// an explicit output path's extension.
func (r *root) outputOptions(explicitPath string) output.Options {
	cfg := r.configuration()
	format := cfg.Output.Format
	if explicitPath != "" {
		format = formatForPath(explicitPath, format)
	}
	return output.Options{Format: format, Quality: cfg.Output.Quality}
}

// saveImage writes img to the explicit path when given, otherwise to a
// timestamped file in the configured output directory. It returns the
// absolute path written.
func (r *root) saveImage(img image.Image, explicitPath string) (string, error) {
	cfg := r.configuration()
	opts := r.outputOptions(explicitPath)
	path := explicitPath
	if path == "" {
		var err error
		path, err = output.WriteAuto(img, cfg.Output.Dir, cfg.Output.Prefix, opts, time.Now())
		if err != nil {
			return "", err
		}
	} else if err := output.Save(img, path, opts); err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// editorOptions builds the editor session settings from the loaded
// configuration plus the per-command overrides.
func (r *root) editorOptions(source, savePath string, shadow bool) editor.Options {
	cfg := r.configuration()
	opts := editor.Options{
		Source:   source,
		Style:    cfg.Tools.Style(),
		TextSize: cfg.Tools.TextSize,
		SavePath: savePath,
		Dir:      cfg.Output.Dir,
		Prefix:   cfg.Output.Prefix,
		Output:   r.outputOptions(savePath),
		Version:  version,
	}
	if r != nil {
		opts.Theme = r.theme
		opts.Notifier = r.notifier
	}
	if shadow {
		so := shadowOptions(opts.Output)
		opts.Shadow = &so
	}
	return opts
}

// shadowOptions returns the stock drop shadow, backed with white when
// the output format cannot carry alpha.
func shadowOptions(opts output.Options) render.ShadowOptions {
	so := render.DefaultShadowOptions()
	if opts.Ext() != "png" {
		so.Background = color.RGBA{255, 255, 255, 255}
	}
	return so
}

// reportFile prints size and checksum detail for a written file.
func reportFile(path string) {
	if path == "" {
		return
	}
	meta, err := output.Describe(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "describe %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s (%s, sha256 %s)\n", meta.Path, output.FormatSize(meta.Size), meta.SHA256[:12])
}
