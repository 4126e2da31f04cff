package plove

import (
	"runtime"

	"github.com/wbrown/plove/imageutil"
)

// EdgeDetector turns a 64x64 glyph into a 64x64 edge map in which any
// non-zero pixel is an edge. It must not modify the glyph.
type EdgeDetector func(glyph *imageutil.GrayImage) *imageutil.GrayImage

// Option configures an extraction.
type Option func(*options)

type options struct {
	edges   EdgeDetector
	legacy  bool
	workers int
}

func defaultOptions() options {
	return options{
		edges:   imageutil.Outline,
		workers: runtime.GOMAXPROCS(0),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEdgeDetector replaces the default binary outline detector.
// A nil detector keeps the default.
//
// Example:
//
//	fv, err := plove.ExtractOutline(img, plove.WithEdgeDetector(imageutil.CannyDefault))
func WithEdgeDetector(d EdgeDetector) Option {
	return func(o *options) {
		if d != nil {
			o.edges = d
		}
	}
}

// WithLegacyValidation accepts any glyph with at least one side of 64
// pixels and extracts from its top-left 64x64 window, pixels outside the
// image reading as background. This matches feature sets produced by
// extractors that only rejected images where both sides differ from 64.
//
// The edge detector runs on the 64x64 window, not the whole image, so a
// stroke cut by the window's right or bottom side gains edge pixels
// along the cut. Edge maps computed over the whole image have none there.
func WithLegacyValidation() Option {
	return func(o *options) {
		o.legacy = true
	}
}

// WithWorkers bounds the number of glyphs ExtractBatch processes at once.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}
