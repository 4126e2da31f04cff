package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/wbrown/plove"
	"github.com/wbrown/plove/glyph"
	"github.com/wbrown/plove/imageutil"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

// collectImages expands directories in paths to the image files they
// contain, sorted by name. Files named directly are kept as given.
func collectImages(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && imageExts[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// loadGlyphs reads each image and, when cfg.Prepare is set, normalises it
// to a 64x64 binary glyph.
func loadGlyphs(cfg *Config, paths []string) ([]image.Image, error) {
	opts := cfg.glyphOptions()
	glyphs := make([]image.Image, len(paths))
	for i, p := range paths {
		img, err := imageutil.LoadImage(p)
		if err != nil {
			return nil, err
		}
		if cfg.Prepare {
			glyphs[i] = imageutil.PrepareGlyph(img, opts)
		} else {
			glyphs[i] = imageutil.ToGrayscale(img)
		}
	}
	return glyphs, nil
}

func runImages(ctx context.Context, cfg *Config, args []string, log *slog.Logger) error {
	paths, err := collectImages(args)
	if err != nil {
		return err
	}
	glyphs, err := loadGlyphs(cfg, paths)
	if err != nil {
		return err
	}
	log.Debug("loaded images", "count", len(glyphs))

	vecs, err := plove.ExtractBatch(ctx, cfg.variant(), glyphs, cfg.options()...)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return writeCSV(os.Stdout, cfg.variant(), paths, vecs)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeCSV(f, cfg.variant(), paths, vecs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	log.Info("wrote features", "path", cfg.Output, "rows", len(vecs))
	return nil
}

// writeCSV writes a header row followed by one row per vector: the
// source name, then every feature value.
func writeCSV(w io.Writer, variant plove.Variant, names []string, vecs []*plove.FeatureVector) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, variant.Dim()+1)
	header = append(header, "file")
	for i := 0; i < variant.Dim(); i++ {
		header = append(header, "f"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, variant.Dim()+1)
	for i, fv := range vecs {
		row[0] = names[i]
		for j, v := range fv.Values {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func runFont(ctx context.Context, cfg *Config, log *slog.Logger) error {
	var r *glyph.Renderer
	var err error
	if cfg.Font == "go" {
		r, err = glyph.DefaultRenderer()
	} else {
		r, err = glyph.LoadRenderer(cfg.Font)
	}
	if err != nil {
		return err
	}
	r.SetMargin(cfg.Margin)

	set, err := glyph.BuildFeatureSet(ctx, r, cfg.variant(), []rune(cfg.Chars), cfg.options()...)
	if err != nil {
		return err
	}
	if skipped := len([]rune(cfg.Chars)) - set.Len(); skipped > 0 {
		log.Warn("font is missing characters", "font", r.Name(), "skipped", skipped)
	}
	if err := set.Save(cfg.Output); err != nil {
		return err
	}
	log.Info("wrote feature set", "path", cfg.Output, "font", r.Name(), "glyphs", set.Len())
	return nil
}
