// Package plove computes peripheral stroke-shape features of 64x64
// character glyphs for OCR classifiers.
//
// Two encodings share one scanning geometry:
//
//   - outline (P-LOVE): each pixel carries a 4-class histogram of the
//     stroke directions around it.
//   - moment (P-LM): each pixel carries the second-order moments
//     (Sx, Sy, Sxy) of the edge pixels around it.
//
// The glyph is swept along rows, columns and both diagonals. From each
// end of every scan line the first three background-to-foreground
// crossings are collected, their local vectors are folded into 8 groups
// of 6 slots, and the normalised slots of the four orientations are
// concatenated into a FeatureVector.
//
// A pixel is foreground when its gray intensity is non-zero.
package plove

import (
	"errors"
	"fmt"
)

const (
	// GlyphSize is the required width and height of an input glyph.
	GlyphSize = 64

	// Groups is the number of line groups per orientation.
	Groups = 8

	// Slots is the number of crossing slots per group: three from the
	// forward scan followed by three from the reverse scan.
	Slots = 6

	// Layers is the number of crossings collected per scan direction.
	Layers = 3

	// OutlineComponents is the width of an outline local vector.
	OutlineComponents = 4

	// MomentComponents is the width of a moment local vector.
	MomentComponents = 3

	// OutlineDim is the length of an outline feature vector.
	OutlineDim = 4 * Groups * Slots * OutlineComponents // 768

	// MomentDim is the length of a moment feature vector.
	MomentDim = 4 * Groups * Slots * MomentComponents // 576
)

var (
	// ErrInvalidDimensions is returned when a glyph is not 64x64.
	ErrInvalidDimensions = errors.New("plove: glyph must be 64x64")

	// ErrAllocationFailure is returned when an intermediate buffer,
	// including the edge map, could not be obtained.
	ErrAllocationFailure = errors.New("plove: intermediate buffer unavailable")
)

// Variant selects the per-pixel statistic aggregated by the scan.
type Variant int

const (
	// Outline aggregates local edge-direction histograms.
	Outline Variant = iota
	// Moment aggregates local second-order moments.
	Moment
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case Outline:
		return "outline"
	case Moment:
		return "moment"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant maps "outline"/"plove" and "moment"/"plm" to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "outline", "plove":
		return Outline, nil
	case "moment", "plm":
		return Moment, nil
	default:
		return 0, fmt.Errorf("plove: unknown variant %q", s)
	}
}

// Components returns the local vector width of the variant.
func (v Variant) Components() int {
	if v == Moment {
		return MomentComponents
	}
	return OutlineComponents
}

// Dim returns the feature vector length of the variant.
func (v Variant) Dim() int {
	if v == Moment {
		return MomentDim
	}
	return OutlineDim
}

func (v Variant) valid() bool {
	return v == Outline || v == Moment
}

// FeatureVector is the flat output of one extraction.
// Values are ordered orientation (0, 45, 90, 135 degrees), then group,
// then slot, then component.
type FeatureVector struct {
	Variant Variant
	Dim     int
	Values  []float64
}

// Index returns the position in Values of one component of one slot.
func (fv *FeatureVector) Index(orientation, group, slot, component int) int {
	c := fv.Variant.Components()
	return ((orientation*Groups+group)*Slots+slot)*c + component
}

// Slot returns the normalised local vector stored for one slot.
// Only the first Variant.Components() entries are meaningful.
func (fv *FeatureVector) Slot(orientation, group, slot int) LocalVector {
	var lv LocalVector
	base := fv.Index(orientation, group, slot, 0)
	copy(lv[:fv.Variant.Components()], fv.Values[base:])
	return lv
}
