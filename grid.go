package plove

import "fmt"

// grid is an owned row-major 2D buffer indexed by (x, y).
// Dimensions are checked once, when the grid is created.
type grid[T any] struct {
	width  int
	height int
	cells  []T
}

// newGrid allocates a zeroed width x height grid.
func newGrid[T any](width, height int) (*grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrAllocationFailure, width, height)
	}
	return &grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}, nil
}

func (g *grid[T]) at(x, y int) T {
	return g.cells[y*g.width+x]
}

func (g *grid[T]) set(x, y int, v T) {
	g.cells[y*g.width+x] = v
}
