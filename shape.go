package fluxed

import (
	"fmt"
	"sync"
)

// Shape is an N-dimensional shape defined by a border on a voxel grid.
// Voxels with value 1 are border points, 0s are empty space. The enclosed
// region (0-regions not connected to the grid boundary) is computed once
// on first use and cached; Shape is safe for concurrent use after
// construction.
type Shape struct {
	grid *Grid

	scanOnce sync.Once
	interior []bool
	closed   bool
	enclosed int
}

// NewShape creates a Shape from a binary grid.
// Returns ErrNotBinary if any voxel is not 0 or 1.
func NewShape(g *Grid) (*Shape, error) {
	for off, v := range g.flat {
		if v > 1 {
			idx := make([]int, g.Dimensions())
			g.unravel(off, idx)
			return nil, fmt.Errorf("%w: found %d at %v", ErrNotBinary, v, idx)
		}
	}
	return &Shape{grid: g.Clone()}, nil
}

// ShapeFromValues creates a Shape from a flat row-major value slice.
func ShapeFromValues(dims []int, values []uint8) (*Shape, error) {
	g, err := GridFromValues(dims, values)
	if err != nil {
		return nil, err
	}
	return NewShape(g)
}

// HollowBox creates a closed shape whose border is the outer shell of the
// given box: boundary voxels are 1, everything inside is 0. Each dimension
// must be at least 3 for the box to enclose anything.
func HollowBox(dims ...int) (*Shape, error) {
	g, err := NewGrid(dims...)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(dims))
	for off := range g.flat {
		g.unravel(off, idx)
		if onBoundary(idx, g.dims) {
			g.flat[off] = 1
		}
	}
	return &Shape{grid: g}, nil
}

// Grid returns a copy of the underlying border grid.
func (s *Shape) Grid() *Grid {
	return s.grid.Clone()
}

// Dimensions returns the number of dimensions of the shape.
func (s *Shape) Dimensions() int {
	return s.grid.Dimensions()
}

// Dims returns the dimension sizes of the shape's grid.
func (s *Shape) Dims() []int {
	return s.grid.Dims()
}

// IsClosed reports whether the border encloses at least one region of 0s,
// i.e. a 0-region not connected to the grid boundary under orthogonal
// connectivity.
func (s *Shape) IsClosed() bool {
	s.scanOnce.Do(s.scan)
	return s.closed
}

// Interior returns the mask of enclosed voxels, indexed by flat offset.
// The returned slice is shared; callers must not modify it.
func (s *Shape) Interior() []bool {
	s.scanOnce.Do(s.scan)
	return s.interior
}

// EnclosedVolume returns the number of enclosed voxels.
func (s *Shape) EnclosedVolume() int {
	s.scanOnce.Do(s.scan)
	return s.enclosed
}

// scan flood-fills the 0-region reachable from the grid boundary.
// Unreached 0s form the enclosed interior.
func (s *Shape) scan() {
	g := s.grid
	n := g.Len()
	outside := make([]bool, n)
	queue := make([]int, 0, n/4)
	idx := make([]int, g.Dimensions())

	// Seed with every empty voxel on the grid boundary.
	for off := 0; off < n; off++ {
		if g.flat[off] != 0 {
			continue
		}
		g.unravel(off, idx)
		if onBoundary(idx, g.dims) {
			outside[off] = true
			queue = append(queue, off)
		}
	}

	// BFS through orthogonal neighbors.
	for head := 0; head < len(queue); head++ {
		off := queue[head]
		g.unravel(off, idx)
		for d := range g.dims {
			if idx[d] > 0 {
				if noff := off - g.strides[d]; g.flat[noff] == 0 && !outside[noff] {
					outside[noff] = true
					queue = append(queue, noff)
				}
			}
			if idx[d] < g.dims[d]-1 {
				if noff := off + g.strides[d]; g.flat[noff] == 0 && !outside[noff] {
					outside[noff] = true
					queue = append(queue, noff)
				}
			}
		}
	}

	interior := make([]bool, n)
	count := 0
	for off := 0; off < n; off++ {
		if g.flat[off] == 0 && !outside[off] {
			interior[off] = true
			count++
		}
	}
	s.interior = interior
	s.enclosed = count
	s.closed = count > 0
}

// onBoundary reports whether the multi-index touches the grid boundary.
func onBoundary(idx, dims []int) bool {
	for i, v := range idx {
		if v == 0 || v == dims[i]-1 {
			return true
		}
	}
	return false
}

// axisSelector is implemented by distributions that read one selected
// coordinate, so the selection can be validated against the grid.
type axisSelector interface {
	selectedAxis() int
}

// checkAxes validates axes and distribution arity against the grid.
func (s *Shape) checkAxes(dist Distribution, axes []Axis) error {
	if a := dist.Arity(); a != 0 && a != s.grid.Dimensions() {
		return fmt.Errorf("%w: %s takes %d coordinates, grid has %d dimensions",
			ErrArityMismatch, dist.Name(), a, s.grid.Dimensions())
	}
	if sel, ok := dist.(axisSelector); ok {
		if a := sel.selectedAxis(); a < 0 || a >= s.grid.Dimensions() {
			return fmt.Errorf("%w: %s selects axis %d, grid has %d dimensions",
				ErrArityMismatch, dist.Name(), a, s.grid.Dimensions())
		}
	}
	if len(axes) == 0 {
		return nil
	}
	if len(axes) != s.grid.Dimensions() {
		return fmt.Errorf("%w: got %d axes for %d dimensions",
			ErrAxisMismatch, len(axes), s.grid.Dimensions())
	}
	for i, a := range axes {
		if len(a) != s.grid.dims[i] {
			return fmt.Errorf("%w: axis %d has %d coordinates, dimension size is %d",
				ErrAxisMismatch, i, len(a), s.grid.dims[i])
		}
	}
	return nil
}

// coordinate returns the coordinate value for grid index v along dimension d.
func coordinate(axes []Axis, d, v int) float64 {
	if len(axes) == 0 {
		return float64(v)
	}
	return axes[d][v]
}

// FillIntensity evaluates the distribution at every voxel's coordinates
// and returns the intensity values in flat row-major order. Axes supply
// the coordinate value per index along each dimension; with no axes,
// integer indices are used.
func (s *Shape) FillIntensity(dist Distribution, axes ...Axis) ([]float64, error) {
	if err := s.checkAxes(dist, axes); err != nil {
		return nil, err
	}
	g := s.grid
	out := make([]float64, g.Len())
	idx := make([]int, g.Dimensions())
	coords := make([]float64, g.Dimensions())
	for off := range out {
		g.unravel(off, idx)
		for d, v := range idx {
			coords[d] = coordinate(axes, d, v)
		}
		out[off] = dist.Intensity(coords...)
	}
	return out, nil
}

// Flux computes the total flux through the shape: the sum of intensity
// values over the enclosed region. Returns ErrOpenShape if the border
// does not enclose any region.
func (s *Shape) Flux(dist Distribution, axes ...Axis) (float64, error) {
	if err := s.checkAxes(dist, axes); err != nil {
		return 0, err
	}
	if !s.IsClosed() {
		return 0, ErrOpenShape
	}

	g := s.grid
	idx := make([]int, g.Dimensions())
	coords := make([]float64, g.Dimensions())
	total := 0.0
	for off, in := range s.interior {
		if !in {
			continue
		}
		g.unravel(off, idx)
		for d, v := range idx {
			coords[d] = coordinate(axes, d, v)
		}
		total += dist.Intensity(coords...)
	}
	return total, nil
}
