package plove

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/plove/imageutil"
)

type coordCase struct {
	line, i int
	fwd     image.Point
	rev     image.Point
}

func TestOrientationCoordinates(t *testing.T) {
	tests := []struct {
		orientation int
		cases       []coordCase
	}{
		{0, []coordCase{
			{line: 0, i: 0, fwd: image.Pt(0, 0), rev: image.Pt(63, 0)},
			{line: 5, i: 2, fwd: image.Pt(2, 5), rev: image.Pt(61, 5)},
			{line: 63, i: 63, fwd: image.Pt(63, 63), rev: image.Pt(0, 63)},
		}},
		{1, []coordCase{
			{line: 0, i: 0, fwd: image.Pt(0, 0), rev: image.Pt(0, 0)},
			{line: 10, i: 3, fwd: image.Pt(3, 7), rev: image.Pt(7, 3)},
			{line: 63, i: 0, fwd: image.Pt(0, 63), rev: image.Pt(63, 0)},
			{line: 64, i: 0, fwd: image.Pt(0, 63), rev: image.Pt(63, 0)},
			{line: 100, i: 5, fwd: image.Pt(41, 58), rev: image.Pt(58, 41)},
			{line: 127, i: 0, fwd: image.Pt(63, 63), rev: image.Pt(63, 63)},
		}},
		{2, []coordCase{
			{line: 0, i: 0, fwd: image.Pt(0, 63), rev: image.Pt(0, 0)},
			{line: 5, i: 2, fwd: image.Pt(5, 61), rev: image.Pt(5, 2)},
		}},
		{3, []coordCase{
			{line: 0, i: 0, fwd: image.Pt(0, 63), rev: image.Pt(0, 63)},
			{line: 10, i: 3, fwd: image.Pt(7, 60), rev: image.Pt(3, 56)},
			{line: 63, i: 0, fwd: image.Pt(63, 63), rev: image.Pt(0, 0)},
			{line: 64, i: 0, fwd: image.Pt(63, 63), rev: image.Pt(0, 0)},
			{line: 70, i: 2, fwd: image.Pt(61, 55), rev: image.Pt(8, 2)},
			{line: 127, i: 0, fwd: image.Pt(63, 0), rev: image.Pt(63, 0)},
		}},
	}

	for _, tc := range tests {
		o := &orientations[tc.orientation]
		for _, c := range tc.cases {
			x, y := o.forward(c.line, c.i)
			assert.Equal(t, c.fwd, image.Pt(x, y), "%s forward line %d i %d", o.name, c.line, c.i)
			x, y = o.reverse(c.line, c.i)
			assert.Equal(t, c.rev, image.Pt(x, y), "%s reverse line %d i %d", o.name, c.line, c.i)
		}
	}
}

func TestOrientationTable(t *testing.T) {
	want := []struct {
		degrees int
		lines   int
		divisor float64
	}{
		{0, 64, 8},
		{45, 128, 16},
		{90, 64, 8},
		{135, 128, 16},
	}
	for i, w := range want {
		o := orientations[i]
		assert.Equal(t, w.degrees, o.degrees)
		assert.Equal(t, w.lines, o.lines)
		assert.Equal(t, w.divisor, o.divisor)
		assert.Equal(t, 0, o.group(0))
		assert.Equal(t, Groups-1, o.group(o.lines-1))
	}

	assert.Equal(t, 1, diagonalLength(0))
	assert.Equal(t, 64, diagonalLength(63))
	assert.Equal(t, 64, diagonalLength(64))
	assert.Equal(t, 1, diagonalLength(127))
}

// Every line stays in bounds, steps one pixel at a time, and its reverse
// walk visits the forward pixels backwards.
func TestOrientationLinesAreWellFormed(t *testing.T) {
	for i := range orientations {
		o := &orientations[i]
		t.Run(o.name, func(t *testing.T) {
			for line := 0; line < o.lines; line++ {
				n := o.length(line)
				for i := 0; i < n; i++ {
					x, y := o.forward(line, i)
					require.True(t, x >= 0 && x < GlyphSize && y >= 0 && y < GlyphSize,
						"line %d i %d out of bounds: (%d,%d)", line, i, x, y)

					rx, ry := o.reverse(line, n-1-i)
					require.Equal(t, image.Pt(x, y), image.Pt(rx, ry), "line %d i %d", line, i)

					if i > 0 {
						px, py := o.forward(line, i-1)
						require.LessOrEqual(t, abs(x-px), 1)
						require.LessOrEqual(t, abs(y-py), 1)
					}
				}
			}
		})
	}
}

// Axis-aligned families cover each pixel once. The diagonal families
// cover each pixel once except their main diagonal, which lines 63 and
// 64 both walk.
func TestOrientationCoverage(t *testing.T) {
	for i := range orientations {
		o := &orientations[i]
		t.Run(o.name, func(t *testing.T) {
			var seen [GlyphSize][GlyphSize]int
			for line := 0; line < o.lines; line++ {
				for i := 0; i < o.length(line); i++ {
					x, y := o.forward(line, i)
					seen[y][x]++
				}
			}
			for y := 0; y < GlyphSize; y++ {
				for x := 0; x < GlyphSize; x++ {
					want := 1
					switch o.degrees {
					case 45:
						if x+y == last {
							want = 2
						}
					case 135:
						if x == y {
							want = 2
						}
					}
					require.Equal(t, want, seen[y][x], "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func markedField(t *testing.T, pts ...image.Point) *Field {
	t.Helper()
	f, err := newField()
	require.NoError(t, err)
	for _, p := range pts {
		f.set(p.X, p.Y, LocalVector{float64(p.X), float64(p.Y), 1, 0})
	}
	return f
}

func TestScanLineStopsAfterThreeCrossings(t *testing.T) {
	pts := []image.Point{image.Pt(1, 0), image.Pt(3, 0), image.Pt(5, 0), image.Pt(7, 0), image.Pt(9, 0)}
	glyph := imageutil.CreatePointsGlyph(GlyphSize, pts...)
	f := markedField(t, pts...)
	o := &orientations[0]

	slots := make([]LocalVector, Layers)
	n := scanLine(glyph, f, GlyphSize, 0, o.forward, slots)
	assert.Equal(t, 3, n)
	assert.Equal(t, []LocalVector{{1, 0, 1, 0}, {3, 0, 1, 0}, {5, 0, 1, 0}}, slots)

	slots = make([]LocalVector, Layers)
	n = scanLine(glyph, f, GlyphSize, 0, o.reverse, slots)
	assert.Equal(t, 3, n)
	assert.Equal(t, []LocalVector{{9, 0, 1, 0}, {7, 0, 1, 0}, {5, 0, 1, 0}}, slots)
}

func TestScanLineCountsRunsOnce(t *testing.T) {
	// A run starting on the border counts, the rest of the run does not.
	glyph := imageutil.CreateRectGlyph(GlyphSize, image.Rect(0, 0, 4, 1))
	f := markedField(t, image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0), image.Pt(3, 0))

	slots := make([]LocalVector, Layers)
	n := scanLine(glyph, f, GlyphSize, 0, orientations[0].forward, slots)
	assert.Equal(t, 1, n)
	assert.Equal(t, LocalVector{0, 0, 1, 0}, slots[0])
	assert.Equal(t, LocalVector{}, slots[1])

	slots = make([]LocalVector, Layers)
	n = scanLine(glyph, f, GlyphSize, 0, orientations[0].reverse, slots)
	assert.Equal(t, 1, n)
	assert.Equal(t, LocalVector{3, 0, 1, 0}, slots[0])
}

func TestScanOrientationGroupsLines(t *testing.T) {
	// One crossing on each of rows 0..15 lands in groups 0 and 1.
	var pts []image.Point
	for y := 0; y < 16; y++ {
		pts = append(pts, image.Pt(10, y))
	}
	glyph := imageutil.CreatePointsGlyph(GlyphSize, pts...)
	f, err := newField()
	require.NoError(t, err)
	for _, p := range pts {
		f.set(p.X, p.Y, LocalVector{1, 0, 0, 0})
	}

	lf, crossings := scanOrientation(glyph, f, &orientations[0])
	assert.Equal(t, 32, crossings)
	for g := 0; g < Groups; g++ {
		want := 0.0
		if g < 2 {
			want = 8
		}
		assert.Equal(t, want, lf[g][0][0], "group %d slot 0", g)
		assert.Equal(t, want, lf[g][3][0], "group %d slot 3", g)
		assert.Zero(t, lf[g][1][0], "group %d slot 1", g)
	}

	values := lf.appendTo(nil, orientations[0].divisor, OutlineComponents)
	require.Len(t, values, Groups*Slots*OutlineComponents)
	assert.Equal(t, 1.0, values[0])
	assert.Equal(t, 1.0, values[3*OutlineComponents])
	assert.Equal(t, 1.0, values[Slots*OutlineComponents])
	assert.Zero(t, values[2*Slots*OutlineComponents])
}

// Rotating the glyph by 180 degrees swaps forward and reverse walks and
// mirrors the groups, so for a glyph that is its own rotation the
// forward slots of group g equal the reverse slots of group 7-g.
func TestAxisScansAreSymmetricUnderRotation(t *testing.T) {
	tests := []struct {
		name    string
		glyph   *imageutil.GrayImage
		variant Variant
	}{
		{
			name: "moment of framed block",
			glyph: func() *imageutil.GrayImage {
				g := imageutil.CreateRectGlyph(GlyphSize, image.Rect(10, 20, 54, 44))
				for y := 28; y < 36; y++ {
					for x := 20; x < 44; x++ {
						g.SetGrayValue(x, y, 0)
					}
				}
				return g
			}(),
			variant: Moment,
		},
		{
			name:    "outline of thin strokes",
			glyph:   symmetricStrokes(),
			variant: Outline,
		},
		{
			name:    "moment of thin strokes",
			glyph:   symmetricStrokes(),
			variant: Moment,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.glyph.Pix, imageutil.Rotate180(tc.glyph).Pix, "glyph is not symmetric")

			var f *Field
			var err error
			if tc.variant == Outline {
				f, err = OutlineField(imageutil.Outline(tc.glyph))
			} else {
				f, err = MomentField(imageutil.Outline(tc.glyph))
			}
			require.NoError(t, err)

			for _, oi := range []int{0, 2} {
				lf, crossings := scanOrientation(tc.glyph, f, &orientations[oi])
				require.NotZero(t, crossings)
				nonZero := false
				for g := 0; g < Groups; g++ {
					for k := 0; k < Layers; k++ {
						fwd, rev := lf[g][k], lf[Groups-1-g][k+Layers]
						for c := range fwd {
							assert.InDelta(t, fwd[c], rev[c], 1e-12,
								"%s group %d slot %d component %d", orientations[oi].name, g, k, c)
							nonZero = nonZero || fwd[c] != 0
						}
					}
				}
				assert.True(t, nonZero, "%s accumulated nothing", orientations[oi].name)
			}
		})
	}
}

// symmetricStrokes draws disjoint one pixel strokes in 180 degree
// symmetric pairs. Every stroke pixel codes to its stroke's direction,
// so direction precedence cannot break the symmetry.
func symmetricStrokes() *imageutil.GrayImage {
	seg := func(x0, y0, x1, y1 int) [2]image.Point {
		return [2]image.Point{image.Pt(x0, y0), image.Pt(x1, y1)}
	}
	return imageutil.CreateLineGlyph(GlyphSize,
		seg(10, 8, 10, 55), seg(53, 8, 53, 55), // |
		seg(20, 30, 43, 30), seg(20, 33, 43, 33), // -
		seg(20, 40, 26, 46), seg(37, 17, 43, 23), // \
		seg(15, 20, 18, 17), seg(45, 46, 48, 43), // /
	)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func ExampleExtractOutline() {
	glyph := imageutil.CreateRectGlyph(GlyphSize, image.Rect(16, 8, 48, 56))
	fv, err := ExtractOutline(glyph)
	if err != nil {
		panic(err)
	}
	fmt.Println(fv.Variant, fv.Dim, len(fv.Values))
	// Output: outline 768 768
}
