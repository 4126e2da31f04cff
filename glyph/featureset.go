package glyph

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/gob"
	"fmt"
	"image"
	"os"

	"github.com/wbrown/plove"
)

// FeatureSet is a table of feature vectors labelled by the character
// they were rendered from. It is stored as gzip-compressed gob.
type FeatureSet struct {
	FontName string
	Variant  string
	Dim      int
	Labels   []rune
	Vectors  [][]float64
}

// BuildFeatureSet renders runes with r and extracts one feature vector
// per rune the font has. Runes missing from the font are skipped.
func BuildFeatureSet(ctx context.Context, r *Renderer, variant plove.Variant, runes []rune, opts ...plove.Option) (*FeatureSet, error) {
	labels, glyphs := r.RenderAll(runes)

	imgs := make([]image.Image, len(glyphs))
	for i, g := range glyphs {
		imgs[i] = g
	}
	vecs, err := plove.ExtractBatch(ctx, variant, imgs, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s features: %w", r.Name(), err)
	}

	fs := &FeatureSet{
		FontName: r.Name(),
		Variant:  variant.String(),
		Dim:      variant.Dim(),
		Labels:   labels,
		Vectors:  make([][]float64, len(vecs)),
	}
	for i, fv := range vecs {
		fs.Vectors[i] = fv.Values
	}
	return fs, nil
}

// Len returns the number of labelled vectors.
func (fs *FeatureSet) Len() int {
	return len(fs.Labels)
}

// Lookup returns the vector for a label.
func (fs *FeatureSet) Lookup(ch rune) ([]float64, bool) {
	for i, l := range fs.Labels {
		if l == ch {
			return fs.Vectors[i], true
		}
	}
	return nil, false
}

// validate checks that labels and vectors line up with the declared
// dimension.
func (fs *FeatureSet) validate() error {
	if len(fs.Labels) != len(fs.Vectors) {
		return fmt.Errorf("feature set has %d labels but %d vectors",
			len(fs.Labels), len(fs.Vectors))
	}
	v, err := plove.ParseVariant(fs.Variant)
	if err != nil {
		return err
	}
	if fs.Dim != v.Dim() {
		return fmt.Errorf("feature set dim %d does not match %s (%d)", fs.Dim, v, v.Dim())
	}
	for i, vec := range fs.Vectors {
		if len(vec) != fs.Dim {
			return fmt.Errorf("vector %d (%q) has %d values, want %d",
				i, fs.Labels[i], len(vec), fs.Dim)
		}
	}
	return nil
}

// Save writes the feature set to path.
func (fs *FeatureSet) Save(path string) error {
	if err := fs.validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(fs); err != nil {
		return fmt.Errorf("failed to encode feature set: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to compress feature set: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write feature set: %w", err)
	}
	return nil
}

// LoadFeatureSet reads a feature set written by Save.
func LoadFeatureSet(path string) (*FeatureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature set: %w", err)
	}

	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	var fs FeatureSet
	if err := gob.NewDecoder(gr).Decode(&fs); err != nil {
		return nil, fmt.Errorf("failed to decode feature set: %w", err)
	}
	if err := fs.validate(); err != nil {
		return nil, err
	}
	return &fs, nil
}
