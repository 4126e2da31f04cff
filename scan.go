package plove

import "github.com/wbrown/plove/imageutil"

// orientation describes one family of parallel scan lines.
type orientation struct {
	name    string
	degrees int
	lines   int
	divisor float64

	// length returns the number of pixels on a line.
	length func(line int) int
	// forward and reverse return the i-th pixel of a line walked from
	// either end.
	forward func(line, i int) (x, y int)
	reverse func(line, i int) (x, y int)
}

// group buckets a line into one of the Groups line groups.
func (o *orientation) group(line int) int {
	return line / (o.lines / Groups)
}

const last = GlyphSize - 1

func rowLength(int) int { return GlyphSize }

// diagonalLength grows from 1 to 64 over the first half of the diagonal
// lines and shrinks back to 1 over the second half.
func diagonalLength(d int) int {
	if d < GlyphSize {
		return d + 1
	}
	return 2*GlyphSize - d
}

// orientations lists the scan families in output order. Diagonal
// lines d < 64 start on the left or top border; lines d >= 64 start on
// the opposite border. Lines 63 and 64 of each diagonal family cover
// the same main diagonal.
var orientations = [4]orientation{
	{
		name:    "0deg",
		degrees: 0,
		lines:   GlyphSize,
		divisor: 8,
		length:  rowLength,
		forward: func(j, i int) (int, int) { return i, j },
		reverse: func(j, i int) (int, int) { return last - i, j },
	},
	{
		name:    "45deg",
		degrees: 45,
		lines:   2 * GlyphSize,
		divisor: 16,
		length:  diagonalLength,
		forward: func(d, i int) (int, int) {
			if d < GlyphSize {
				return i, d - i
			}
			return i + d - GlyphSize, last - i
		},
		reverse: func(d, i int) (int, int) {
			if d < GlyphSize {
				return d - i, i
			}
			return last - i, d + i - GlyphSize
		},
	},
	{
		name:    "90deg",
		degrees: 90,
		lines:   GlyphSize,
		divisor: 8,
		length:  rowLength,
		forward: func(j, i int) (int, int) { return j, last - i },
		reverse: func(j, i int) (int, int) { return j, i },
	},
	{
		name:    "135deg",
		degrees: 135,
		lines:   2 * GlyphSize,
		divisor: 16,
		length:  diagonalLength,
		forward: func(d, i int) (int, int) {
			if d < GlyphSize {
				return d - i, last - i
			}
			return last - i, 2*GlyphSize - 1 - i - d
		},
		reverse: func(d, i int) (int, int) {
			if d < GlyphSize {
				return i, i - d + last
			}
			return i + d - GlyphSize, i
		},
	},
}

// lineFeatures accumulates crossing vectors for one orientation.
type lineFeatures [Groups][Slots]LocalVector

// scanOrientation walks every line of o from both ends and adds the
// field vector of the first Layers background-to-foreground crossings
// into the line's group. It returns the accumulator and the number of
// crossings recorded.
func scanOrientation(glyph *imageutil.GrayImage, f *Field, o *orientation) (*lineFeatures, int) {
	lf := new(lineFeatures)
	crossings := 0
	for line := 0; line < o.lines; line++ {
		slots := &lf[o.group(line)]
		n := o.length(line)
		crossings += scanLine(glyph, f, n, line, o.forward, slots[:Layers])
		crossings += scanLine(glyph, f, n, line, o.reverse, slots[Layers:])
	}
	return lf, crossings
}

// scanLine walks n pixels of a line and fills slots in order, one per
// crossing, stopping once every slot has been hit.
func scanLine(glyph *imageutil.GrayImage, f *Field, n, line int,
	coord func(line, i int) (int, int), slots []LocalVector) int {
	var prev uint8
	k := 0
	for i := 0; i < n && k < len(slots); i++ {
		x, y := coord(line, i)
		c := glyph.GetGray(x, y)
		if prev == 0 && c != 0 {
			slots[k].add(f.At(x, y))
			k++
		}
		prev = c
	}
	return k
}

// appendTo divides every slot by div and appends the first comps
// components of each, group by group, to values.
func (lf *lineFeatures) appendTo(values []float64, div float64, comps int) []float64 {
	for g := range lf {
		for s := range lf[g] {
			v := lf[g][s]
			v.scale(div)
			values = append(values, v[:comps]...)
		}
	}
	return values
}
