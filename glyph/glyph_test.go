package glyph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/plove"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := DefaultRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderFillsGlyph(t *testing.T) {
	r := newTestRenderer(t)

	for _, ch := range "AIo7" {
		g := r.Render(ch)
		require.Equal(t, plove.GlyphSize, g.Width(), "%q width", ch)
		require.Equal(t, plove.GlyphSize, g.Height(), "%q height", ch)

		for _, v := range g.Pix {
			require.True(t, v == 0 || v == 255, "%q is not binary", ch)
		}

		// The longer side of the ink box is scaled to the full glyph.
		box := g.ForegroundBounds()
		assert.False(t, box.Empty(), "%q has no ink", ch)
		assert.True(t, box.Dx() == plove.GlyphSize || box.Dy() == plove.GlyphSize,
			"%q ink box %v does not fill the glyph\n%s", ch, box, g.ASCII())
	}
}

func TestRenderTallGlyphIsCentred(t *testing.T) {
	r := newTestRenderer(t)

	box := r.Render('I').ForegroundBounds()
	assert.Equal(t, plove.GlyphSize, box.Dy())
	assert.Less(t, box.Dx(), plove.GlyphSize/2)
	mid := (box.Min.X + box.Max.X) / 2
	assert.InDelta(t, plove.GlyphSize/2, mid, 2)
}

func TestRenderSpaceIsBlank(t *testing.T) {
	r := newTestRenderer(t)
	assert.Zero(t, r.Render(' ').CountForeground())
}

func TestRenderMargin(t *testing.T) {
	r := newTestRenderer(t)
	r.SetMargin(4)

	box := r.Render('H').ForegroundBounds()
	assert.GreaterOrEqual(t, box.Min.X, 4)
	assert.GreaterOrEqual(t, box.Min.Y, 4)
	assert.LessOrEqual(t, box.Max.X, plove.GlyphSize-4)
	assert.LessOrEqual(t, box.Max.Y, plove.GlyphSize-4)
}

func TestRenderAllSkipsMissingRunes(t *testing.T) {
	r := newTestRenderer(t)
	require.True(t, r.Has('A'))
	require.False(t, r.Has('\U0001F600'))

	kept, glyphs := r.RenderAll([]rune{'A', '\U0001F600', 'B'})
	assert.Equal(t, []rune{'A', 'B'}, kept)
	assert.Len(t, glyphs, 2)
}

func TestLoadRendererErrors(t *testing.T) {
	_, err := LoadRenderer(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)

	bogus := filepath.Join(t.TempDir(), "bogus.ttf")
	require.NoError(t, os.WriteFile(bogus, []byte("not a font"), 0644))
	_, err = LoadRenderer(bogus)
	require.Error(t, err)
}

func TestFeatureSetSaveLoad(t *testing.T) {
	r := newTestRenderer(t)

	fs, err := BuildFeatureSet(context.Background(), r, plove.Moment, []rune("ABC\U0001F600"))
	require.NoError(t, err)
	require.Equal(t, 3, fs.Len())
	require.Equal(t, "moment", fs.Variant)
	require.Equal(t, plove.MomentDim, fs.Dim)

	// Vectors match a direct extraction of the same glyph.
	want, err := plove.ExtractMoment(r.Render('B'))
	require.NoError(t, err)
	got, ok := fs.Lookup('B')
	require.True(t, ok)
	assert.Equal(t, want.Values, got)

	path := filepath.Join(t.TempDir(), "go.features")
	require.NoError(t, fs.Save(path))

	loaded, err := LoadFeatureSet(path)
	require.NoError(t, err)
	assert.Equal(t, fs, loaded)

	_, ok = loaded.Lookup('Z')
	assert.False(t, ok)
}

func TestFeatureSetRejectsInconsistentData(t *testing.T) {
	fs := &FeatureSet{
		Variant: "outline",
		Dim:     plove.OutlineDim,
		Labels:  []rune{'A'},
		Vectors: [][]float64{make([]float64, 10)},
	}
	err := fs.Save(filepath.Join(t.TempDir(), "bad.features"))
	assert.ErrorContains(t, err, "has 10 values")

	fs.Vectors = nil
	assert.Error(t, fs.validate())
}

func TestLoadFeatureSetCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.features")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	_, err := LoadFeatureSet(path)
	assert.ErrorContains(t, err, "gzip")
}
