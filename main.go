package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raycast-tracer/pkg/bmp"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/integrator"
	"github.com/df07/go-raycast-tracer/pkg/loaders"
	"github.com/df07/go-raycast-tracer/pkg/renderer"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	configFile string
	integrator string
	sceneDir   string
	sky        string
	out        string
	help       bool

	width, height int
	samples       int
	bounces       int
	workers       int
	tileWidth     int
	tileHeight    int
	seed          int64
	gamma         float64

	set map[string]bool // flags given explicitly
}

func parseFlags(args []string, output io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneType, "scene", "default", "Scene: a built-in id, file:<name> from -scenes, or a path to a .json scene")
	fs.StringVar(&opts.configFile, "config", "", "JSON file with render settings (flags override it)")
	fs.StringVar(&opts.integrator, "renderer", "direct", "Renderer: 'direct' (shaded first hit) or 'path' (path tracing)")
	fs.StringVar(&opts.sceneDir, "scenes", "scenes", "Directory holding JSON scene files")
	fs.StringVar(&opts.sky, "sky", "", "Sky image (BMP, PNG or JPEG) replacing the scene's sky")
	fs.StringVar(&opts.out, "out", "", "Output file; .png writes PNG, anything else BMP (default output/<scene>/render_<timestamp>.bmp)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.IntVar(&opts.width, "width", 0, "Image width (default from scene)")
	fs.IntVar(&opts.height, "height", 0, "Image height (default from scene)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (default 1 for direct, scene setting for path)")
	fs.IntVar(&opts.bounces, "bounces", 0, "Maximum bounces per path (default from scene)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.tileWidth, "tile-width", 0, "Tile width in pixels (0 = full rows)")
	fs.IntVar(&opts.tileHeight, "tile-height", 1, "Tile height in rows")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for scene generation and sampling")
	fs.Float64Var(&opts.gamma, "gamma", integrator.DefaultGamma, "Tone mapping exponent")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Raycast Tracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Fprintf(w, "  %-12s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  file:<name>  - <name>.json from the -scenes directory")
}

// createScene resolves the scene and applies the -sky override
func createScene(opts *options) (*scene.Scene, error) {
	if opts.sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	s, err := loaders.LoadScene(opts.sceneType, opts.sceneDir, opts.seed)
	if err != nil {
		return nil, err
	}
	if opts.sky != "" {
		sky, err := loaders.LoadImage(opts.sky)
		if err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
		s.Sky = sky
	}
	return s, nil
}

func createIntegrator(name string, maxBounces int) (integrator.Integrator, error) {
	switch name {
	case "direct":
		return integrator.NewDirectIntegrator(), nil
	case "path":
		return integrator.NewPathTracingIntegrator(maxBounces), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (want direct or path)", name)
	}
}

// loadConfigFile overlays JSON render settings on config
func loadConfigFile(path string, config renderer.Config) (renderer.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// buildConfig layers the render configuration: scene settings, then the
// config file, then explicitly set flags
func buildConfig(opts *options, s *scene.Scene) (renderer.Config, error) {
	config := renderer.ConfigFromScene(s)
	config.Seed = opts.seed
	if opts.integrator == "direct" {
		config.SamplesPerPixel = 1
	}

	if opts.configFile != "" {
		var err error
		if config, err = loadConfigFile(opts.configFile, config); err != nil {
			return config, err
		}
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"width", func() { config.Width = opts.width }},
		{"height", func() { config.Height = opts.height }},
		{"samples", func() { config.SamplesPerPixel = opts.samples }},
		{"bounces", func() { config.MaxBounces = opts.bounces }},
		{"workers", func() { config.Workers = opts.workers }},
		{"tile-width", func() { config.TileWidth = opts.tileWidth }},
		{"tile-height", func() { config.TileHeight = opts.tileHeight }},
		{"seed", func() { config.Seed = opts.seed }},
		{"gamma", func() { config.Gamma = opts.gamma }},
	}
	for _, o := range overrides {
		if opts.set[o.flag] {
			o.apply()
		}
	}

	return config, config.Validate()
}

// createOutputPath returns the -out path, or output/<scene>/render_<timestamp>.bmp
func createOutputPath(out, sceneType string, now time.Time) string {
	if out != "" {
		return out
	}
	base := sceneType
	switch {
	case strings.HasPrefix(base, "file:"):
		base = strings.TrimPrefix(base, "file:")
	case strings.HasSuffix(strings.ToLower(base), ".json"):
		base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	}
	return filepath.Join("output", base, fmt.Sprintf("render_%s.bmp", now.Format("20060102_150405")))
}

// saveImage writes buf as PNG or BMP depending on the file extension
func saveImage(path string, buf *framebuffer.Buffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return bmp.Save(path, buf)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := png.Encode(file, buf.ToRGBA()); err != nil {
		file.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}

func run(args []string, stdout io.Writer) error {
	opts, fs, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if opts.help {
		printHelp(fs, stdout)
		return nil
	}

	s, err := createScene(opts)
	if err != nil {
		return err
	}
	config, err := buildConfig(opts, s)
	if err != nil {
		return err
	}
	integ, err := createIntegrator(opts.integrator, config.MaxBounces)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()
	buf, stats, err := renderer.NewRaytracer(s, config, logger).Render(context.Background(), integ)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render completed in %v (%.1f samples per pixel, %d workers)\n",
		stats.Duration, stats.AverageSamples, stats.Workers)

	filename := createOutputPath(opts.out, opts.sceneType, time.Now())
	if err := saveImage(filename, buf); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
