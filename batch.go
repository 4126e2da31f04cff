package plove

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"
)

// ExtractBatch extracts the features of many glyphs with at most
// WithWorkers glyphs in flight. Results are returned in input order.
// The first failing glyph, or cancellation of ctx, aborts the batch and
// no partial results are returned.
func ExtractBatch(ctx context.Context, variant Variant, glyphs []image.Image, opts ...Option) ([]*FeatureVector, error) {
	o := buildOptions(opts)
	out := make([]*FeatureVector, len(glyphs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, img := range glyphs {
		if gctx.Err() != nil {
			break
		}
		i, img := i, img
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fv, err := extract(variant, img, &o)
			if err != nil {
				return fmt.Errorf("glyph %d: %w", i, err)
			}
			out[i] = fv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
