package plove

import (
	"fmt"

	"github.com/wbrown/plove/imageutil"
)

// bordered is the side of the padded edge buffers.
const bordered = GlyphSize + 2

// Direction is the stroke direction code of an edge pixel.
type Direction uint8

const (
	DirNone       Direction = iota // not an edge pixel, or an isolated one
	DirSlash                       // /
	DirVertical                    // |
	DirBackslash                   // \
	DirHorizontal                  // -
)

var directionNames = [...]string{"none", "/", "|", "\\", "-"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// edgeBuffer holds 0/1 edge occupancy with a one pixel zero border, so
// the 3x3 window around any glyph pixel stays in bounds. Glyph pixel
// (x, y) lives at (x+1, y+1).
type edgeBuffer struct {
	*grid[uint8]
	count int
}

// newEdgeBuffer copies a 64x64 edge map into a fresh bordered buffer.
// The map is read relative to its bounds, which need not start at the
// origin.
func newEdgeBuffer(edges *imageutil.GrayImage) (*edgeBuffer, error) {
	if edges == nil {
		return nil, fmt.Errorf("%w: edge map is nil", ErrAllocationFailure)
	}
	if edges.Width() != GlyphSize || edges.Height() != GlyphSize {
		return nil, fmt.Errorf("%w: edge map is %dx%d",
			ErrAllocationFailure, edges.Width(), edges.Height())
	}
	g, err := newGrid[uint8](bordered, bordered)
	if err != nil {
		return nil, err
	}
	buf := &edgeBuffer{grid: g}
	b := edges.Bounds()
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if edges.GetGray(b.Min.X+x, b.Min.Y+y) != 0 {
				buf.set(x+1, y+1, 1)
				buf.count++
			}
		}
	}
	return buf, nil
}

// neighbour describes one cell of the 3x3 window around a pixel.
type neighbour struct {
	dx, dy int
	dir    Direction
}

// directionRules is applied in order; a later hit overrides an earlier one.
var directionRules = [...]neighbour{
	{-1, -1, DirBackslash},
	{+1, -1, DirSlash},
	{-1, +1, DirSlash},
	{+1, +1, DirBackslash},
	{0, -1, DirVertical},
	{-1, 0, DirHorizontal},
	{+1, 0, DirHorizontal},
	{0, +1, DirVertical},
}

// directionBuffer holds per-pixel direction codes in the same bordered
// frame as edgeBuffer. Border cells are always DirNone.
type directionBuffer struct {
	*grid[Direction]
}

// codeDirections assigns a direction code to every edge pixel from the
// occupancy of its eight neighbours.
func codeDirections(edges *edgeBuffer) (*directionBuffer, error) {
	g, err := newGrid[Direction](bordered, bordered)
	if err != nil {
		return nil, err
	}
	for y := 1; y <= GlyphSize; y++ {
		for x := 1; x <= GlyphSize; x++ {
			if edges.at(x, y) == 0 {
				continue
			}
			d := DirNone
			for _, r := range directionRules {
				if edges.at(x+r.dx, y+r.dy) != 0 {
					d = r.dir
				}
			}
			g.set(x, y, d)
		}
	}
	return &directionBuffer{grid: g}, nil
}

// Direction returns the code of glyph pixel (x, y).
func (b *directionBuffer) Direction(x, y int) Direction {
	return b.at(x+1, y+1)
}
