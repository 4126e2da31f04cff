package plove

import "github.com/wbrown/plove/imageutil"

// LocalVector is the statistic attached to one glyph pixel. Outline
// vectors use all four components (/, |, \, -), moment vectors use the
// first three (Sx, Sy, Sxy).
type LocalVector [4]float64

func (v *LocalVector) add(o LocalVector) {
	for i := range v {
		v[i] += o[i]
	}
}

func (v *LocalVector) scale(div float64) {
	for i := range v {
		v[i] /= div
	}
}

// Field is a 64x64 grid of local vectors, one per glyph pixel.
type Field struct {
	*grid[LocalVector]
}

func newField() (*Field, error) {
	g, err := newGrid[LocalVector](GlyphSize, GlyphSize)
	if err != nil {
		return nil, err
	}
	return &Field{grid: g}, nil
}

// At returns the local vector of glyph pixel (x, y).
func (f *Field) At(x, y int) LocalVector {
	return f.at(x, y)
}

// OutlineField computes the direction histogram field of a 64x64 edge map.
func OutlineField(edges *imageutil.GrayImage) (*Field, error) {
	buf, err := newEdgeBuffer(edges)
	if err != nil {
		return nil, err
	}
	dirs, err := codeDirections(buf)
	if err != nil {
		return nil, err
	}
	return outlineField(dirs)
}

// outlineField histograms the non-empty direction codes of the 3x3
// window around every coded pixel. Uncoded pixels keep a zero vector.
func outlineField(dirs *directionBuffer) (*Field, error) {
	f, err := newField()
	if err != nil {
		return nil, err
	}
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if dirs.at(x+1, y+1) == DirNone {
				continue
			}
			var v LocalVector
			var n float64
			for j := 0; j < 3; j++ {
				for i := 0; i < 3; i++ {
					d := dirs.at(x+i, y+j)
					if d == DirNone {
						continue
					}
					v[d-1]++
					n++
				}
			}
			v.scale(n)
			f.set(x, y, v)
		}
	}
	return f, nil
}

// MomentField computes the local second-moment field of a 64x64 edge map.
func MomentField(edges *imageutil.GrayImage) (*Field, error) {
	buf, err := newEdgeBuffer(edges)
	if err != nil {
		return nil, err
	}
	return momentField(buf)
}

// momentField computes, for every edge pixel, the spread of the occupied
// cells of its 3x3 window about their mean offset.
func momentField(buf *edgeBuffer) (*Field, error) {
	f, err := newField()
	if err != nil {
		return nil, err
	}
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if buf.at(x+1, y+1) == 0 {
				continue
			}
			var n, x0, y0 float64
			for j := 0; j < 3; j++ {
				for i := 0; i < 3; i++ {
					if buf.at(x+i, y+j) == 0 {
						continue
					}
					x0 += float64(i - 1)
					y0 += float64(j - 1)
					n++
				}
			}
			if n == 0 {
				continue
			}
			x0 /= n
			y0 /= n
			var sx, sy, sxy float64
			for j := 0; j < 3; j++ {
				for i := 0; i < 3; i++ {
					if buf.at(x+i, y+j) == 0 {
						continue
					}
					ddx := float64(i-1) - x0
					ddy := float64(j-1) - y0
					sx += ddx * ddx
					sy += ddy * ddy
					sxy += ddx * ddy
				}
			}
			f.set(x, y, LocalVector{sx / n, sy / n, sxy / n, 0})
		}
	}
	return f, nil
}
