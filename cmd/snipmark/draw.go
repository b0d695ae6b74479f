package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/snipmark/internal/annotate"
	"github.com/example/snipmark/internal/clipboard"
	"golang.org/x/image/colornames"
)

// drawCmd renders a shape script onto an image without opening a
// window. Each positional group is one shape: the kind keyword, its
// X,Y points, then optional color and thickness overrides.
type drawCmd struct {
	in        string
	out       string
	copy      bool
	colorSpec string
	thickness int
	textSize  float64
	tools     []annotate.Tool
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	cfg := r.configuration()
	style := cfg.Tools.Style()
	fs.StringVar(&d.in, "in", "", "input image file")
	fs.StringVar(&d.out, "out", "", "output file path (defaults to the input file)")
	fs.BoolVar(&d.copy, "copy", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "", "stroke color for shapes that give none")
	fs.IntVar(&d.thickness, "thickness", style.Thickness, "stroke thickness for shapes that give none")
	fs.Float64Var(&d.textSize, "text-size", cfg.Tools.TextSize, "text size in points")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if d.in == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.out == "" {
		d.out = d.in
	}
	if d.colorSpec != "" {
		col, err := parseColor(d.colorSpec)
		if err != nil {
			return nil, err
		}
		style.Color = col
	}
	if d.thickness >= 1 {
		style.Thickness = d.thickness
	}
	if d.textSize <= 0 {
		d.textSize = annotate.DefaultTextSize
	}
	if len(positionals) == 0 {
		return nil, &UsageError{of: d}
	}
	d.tools, err = parseShapes(positionals, style, d.textSize)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	rgba, err := loadImage(d.in)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.in, err)
	}
	mgr := annotate.NewManager()
	for _, tool := range d.tools {
		mgr.Add(tool)
	}
	mgr.RenderAll(rgba)

	saved, err := d.saveImage(rgba, d.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.notifySave(saved)
	if d.copy {
		detail := filepath.Base(saved)
		if err := clipboard.WriteImage(rgba); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.notifyCopy(detail)
	}
	if d.root != nil && d.verbose {
		fmt.Fprintf(os.Stderr, "rendered %d annotations\n", mgr.Count())
		reportFile(saved)
	}
	return nil
}

// parseShapes builds finished annotation tools from the shape script.
func parseShapes(args []string, base annotate.Style, textSize float64) ([]annotate.Tool, error) {
	var tools []annotate.Tool
	i := 0
	for i < len(args) {
		kind, ok := shapeKind(args[i])
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", args[i])
		}
		i++
		var (
			tool annotate.Tool
			err  error
		)
		switch kind {
		case annotate.KindText:
			tool, i, err = parseTextShape(args, i, base, textSize)
		case annotate.KindFreeDraw:
			tool, i, err = parseFreeShape(args, i, base)
		default:
			tool, i, err = parseSpanShape(kind, args, i, base)
		}
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("no shapes given")
	}
	return tools, nil
}

// parseSpanShape reads the two corner points shared by arrow, rect,
// circle, line and highlight, plus trailing options.
func parseSpanShape(kind annotate.Kind, args []string, i int, style annotate.Style) (annotate.Tool, int, error) {
	if i+2 > len(args) {
		return nil, i, fmt.Errorf("%s requires two X,Y points", kind)
	}
	p0, err := parsePoint(args[i])
	if err != nil {
		return nil, i, err
	}
	p1, err := parsePoint(args[i+1])
	if err != nil {
		return nil, i, err
	}
	i += 2
	style, i, err = shapeOptions(args, i, style)
	if err != nil {
		return nil, i, err
	}
	tool := annotate.New(kind, style)
	tool.Start(p0)
	tool.Finish(p1)
	return tool, i, nil
}

func parseFreeShape(args []string, i int, style annotate.Style) (annotate.Tool, int, error) {
	var points []image.Point
	for i < len(args) {
		p, err := parsePoint(args[i])
		if err != nil {
			break
		}
		points = append(points, p)
		i++
	}
	if len(points) < 2 {
		return nil, i, fmt.Errorf("free requires at least two X,Y points")
	}
	var err error
	style, i, err = shapeOptions(args, i, style)
	if err != nil {
		return nil, i, err
	}
	tool := annotate.NewFreeDraw(style)
	tool.Start(points[0])
	for _, p := range points[1 : len(points)-1] {
		tool.Update(p)
	}
	tool.Finish(points[len(points)-1])
	return tool, i, nil
}

// parseTextShape reads "X,Y CONTENT [color] [size]". Content is a
// single argument; quote it in the shell for multiple words.
func parseTextShape(args []string, i int, style annotate.Style, size float64) (annotate.Tool, int, error) {
	if i+2 > len(args) {
		return nil, i, fmt.Errorf("text requires an X,Y anchor and content")
	}
	anchor, err := parsePoint(args[i])
	if err != nil {
		return nil, i, err
	}
	content := args[i+1]
	if strings.TrimSpace(content) == "" {
		return nil, i, fmt.Errorf("text content cannot be empty")
	}
	i += 2
	if i < len(args) && isOption(args[i]) {
		if _, err := strconv.ParseFloat(args[i], 64); err != nil {
			col, cerr := parseColor(args[i])
			if cerr != nil {
				return nil, i, cerr
			}
			style.Color = col
			i++
		}
	}
	if i < len(args) && isOption(args[i]) {
		v, perr := strconv.ParseFloat(args[i], 64)
		if perr != nil || v <= 0 {
			return nil, i, fmt.Errorf("invalid text size %q", args[i])
		}
		size = v
		i++
	}
	tool := annotate.NewText(style, size)
	tool.Start(anchor)
	tool.SetText(content)
	tool.Finish(anchor)
	return tool, i, nil
}

// shapeOptions consumes an optional color then thickness, stopping at
// the next shape keyword or point.
func shapeOptions(args []string, i int, style annotate.Style) (annotate.Style, int, error) {
	if i < len(args) && isOption(args[i]) {
		if _, err := strconv.Atoi(args[i]); err != nil {
			col, cerr := parseColor(args[i])
			if cerr != nil {
				return style, i, cerr
			}
			style.Color = col
			i++
		}
	}
	if i < len(args) && isOption(args[i]) {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return style, i, fmt.Errorf("invalid thickness %q", args[i])
		}
		if v < 1 {
			return style, i, fmt.Errorf("thickness must be positive")
		}
		style.Thickness = v
		i++
	}
	return style, i, nil
}

// isOption reports whether a token belongs to the current shape rather
// than starting the next one.
func isOption(tok string) bool {
	if _, ok := shapeKind(tok); ok {
		return false
	}
	return !isPoint(tok)
}

// shapeKind resolves a script keyword, accepting the short aliases.
func shapeKind(tok string) (annotate.Kind, bool) {
	name := strings.ToLower(strings.TrimSpace(tok))
	switch name {
	case "rect":
		name = "rectangle"
	case "highlight":
		name = "highlighter"
	case "free":
		name = "freedraw"
	}
	return annotate.ParseKind(name)
}

// parsePoint reads an "X,Y" token.
func parsePoint(tok string) (image.Point, error) {
	x, y, err := splitPair(tok, ",")
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %q, want X,Y", tok)
	}
	return image.Pt(x, y), nil
}

func isPoint(tok string) bool {
	_, err := parsePoint(tok)
	return err == nil
}

// parseColor accepts SVG 1.1 color names and #RRGGBB or #RRGGBBAA hex.
func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		r, err := strconv.ParseUint(spec[1:3], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		g, err := strconv.ParseUint(spec[3:5], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		b, err := strconv.ParseUint(spec[5:7], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		a := uint64(255)
		if len(spec) == 9 {
			val, err := strconv.ParseUint(spec[7:9], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			a = val
		}
		return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

var drawFlagNames = map[string]struct{}{
	"in":        {},
	"out":       {},
	"copy":      {},
	"color":     {},
	"thickness": {},
	"text-size": {},
}

var drawBoolFlags = map[string]struct{}{
	"copy": {},
}

// splitDrawArgs separates known flags from the shape script so flags
// may appear anywhere on the command line. Everything after "--" is a
// positional.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
