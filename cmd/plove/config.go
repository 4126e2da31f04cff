package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wbrown/plove"
	"github.com/wbrown/plove/imageutil"
)

// Config holds every setting of a run. Values come from the defaults, an
// optional TOML file, then command line flags, each overriding the last.
type Config struct {
	Variant string `toml:"variant"`
	Edges   string `toml:"edges"`
	Legacy  bool   `toml:"legacy"`
	Workers int    `toml:"workers"`

	// Input image preparation.
	Prepare     bool `toml:"prepare"`
	Threshold   uint `toml:"threshold"`
	DarkOnLight bool `toml:"dark_on_light"`
	Margin      int  `toml:"margin"`

	// Font mode renders Chars from Font instead of reading images.
	Font  string `toml:"font"`
	Chars string `toml:"chars"`

	Output  string `toml:"output"`
	Verbose bool   `toml:"verbose"`
}

// printableASCII is every visible ASCII character.
const printableASCII = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Variant:   "outline",
		Edges:     "outline",
		Prepare:   true,
		Threshold: 127,
		Chars:     printableASCII,
	}
}

func bindFlags(fs *flag.FlagSet, cfg *Config, configPath *string) {
	fs.StringVar(configPath, "config", "",
		"Path to a TOML config file; flags override its values")
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant,
		"Feature variant: outline (P-LOVE, 768 values) or moment (P-LM, 576 values)")
	fs.StringVar(&cfg.Edges, "edges", cfg.Edges,
		"Edge detector: outline or canny")
	fs.BoolVar(&cfg.Legacy, "legacy", cfg.Legacy,
		"Accept glyphs with only one side of 64 pixels, using the top-left window")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers,
		"Glyphs extracted in parallel, 0 for one per CPU")
	fs.BoolVar(&cfg.Prepare, "prepare", cfg.Prepare,
		"Crop, centre and scale input images to 64x64 binary glyphs")
	fs.UintVar(&cfg.Threshold, "threshold", cfg.Threshold,
		"Ink threshold used when preparing images (0-255)")
	fs.BoolVar(&cfg.DarkOnLight, "darkonlight", cfg.DarkOnLight,
		"Input images have dark ink on a light background")
	fs.IntVar(&cfg.Margin, "margin", cfg.Margin,
		"Background border in pixels around prepared glyphs")
	fs.StringVar(&cfg.Font, "font", cfg.Font,
		"Build a feature set from a TTF file ('go' for Go Regular) instead of reading images")
	fs.StringVar(&cfg.Chars, "chars", cfg.Chars,
		"Characters rendered in font mode")
	fs.StringVar(&cfg.Output, "output", cfg.Output,
		"Output path (CSV for images, default stdout; feature set for -font)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose,
		"Log extraction details to stderr")
}

// parseArgs builds the configuration for args and returns the remaining
// positional arguments.
func parseArgs(args []string, stderr io.Writer) (*Config, []string, error) {
	cfg := DefaultConfig()
	var configPath string
	fs := flag.NewFlagSet("plove", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bindFlags(fs, &cfg, &configPath)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if configPath == "" {
		return &cfg, fs.Args(), cfg.validate()
	}

	// Load the file over the defaults, then parse the flags again so
	// the ones given explicitly win.
	fileCfg := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, &fileCfg); err != nil {
		return nil, nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	fs = flag.NewFlagSet("plove", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bindFlags(fs, &fileCfg, &configPath)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &fileCfg, fs.Args(), fileCfg.validate()
}

func (c *Config) validate() error {
	if _, err := plove.ParseVariant(c.Variant); err != nil {
		return err
	}
	if _, err := edgeDetector(c.Edges); err != nil {
		return err
	}
	if c.Threshold > 255 {
		return fmt.Errorf("threshold %d out of range 0-255", c.Threshold)
	}
	if c.Margin < 0 || 2*c.Margin >= plove.GlyphSize {
		return fmt.Errorf("margin %d leaves no room for the glyph", c.Margin)
	}
	if c.Font != "" && c.Output == "" {
		return fmt.Errorf("font mode needs -output for the feature set")
	}
	return nil
}

// variant returns the parsed variant of a validated config.
func (c *Config) variant() plove.Variant {
	v, _ := plove.ParseVariant(c.Variant)
	return v
}

// options returns the extraction options of a validated config.
func (c *Config) options() []plove.Option {
	edges, _ := edgeDetector(c.Edges)
	opts := []plove.Option{
		plove.WithEdgeDetector(edges),
		plove.WithWorkers(c.Workers),
	}
	if c.Legacy {
		opts = append(opts, plove.WithLegacyValidation())
	}
	return opts
}

// glyphOptions returns the image preparation settings of a validated
// config.
func (c *Config) glyphOptions() imageutil.GlyphOptions {
	opts := imageutil.DefaultGlyphOptions()
	opts.Size = plove.GlyphSize
	opts.Threshold = uint8(c.Threshold)
	opts.DarkOnLight = c.DarkOnLight
	opts.Margin = c.Margin
	return opts
}

func edgeDetector(name string) (plove.EdgeDetector, error) {
	switch strings.ToLower(name) {
	case "outline":
		return imageutil.Outline, nil
	case "canny":
		return imageutil.CannyDefault, nil
	default:
		return nil, fmt.Errorf("unknown edge detector %q, options are outline or canny", name)
	}
}
