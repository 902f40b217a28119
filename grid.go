package fluxed

import (
	"encoding/json"
	"fmt"
)

// Grid is a dense N-dimensional array of uint8 voxels in row-major order.
// The zero value is not usable; construct with NewGrid or GridFromValues.
type Grid struct {
	dims    []int
	strides []int
	flat    []uint8
}

// NewGrid creates a zero-filled grid with the given dimension sizes.
// At least one dimension is required and every size must be >= 1.
func NewGrid(dims ...int) (*Grid, error) {
	if len(dims) == 0 {
		return nil, ErrEmptyGrid
	}
	n := 1
	for _, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("%w: dimension size %d", ErrEmptyGrid, d)
		}
		n *= d
	}
	g := &Grid{
		dims:    append([]int(nil), dims...),
		strides: make([]int, len(dims)),
		flat:    make([]uint8, n),
	}
	g.computeStrides()
	return g, nil
}

// GridFromValues creates a grid from a flat row-major value slice.
// len(values) must equal the product of dims.
func GridFromValues(dims []int, values []uint8) (*Grid, error) {
	g, err := NewGrid(dims...)
	if err != nil {
		return nil, err
	}
	if len(values) != len(g.flat) {
		return nil, fmt.Errorf("%w: got %d values for dims %v", ErrValueCount, len(values), dims)
	}
	copy(g.flat, values)
	return g, nil
}

func (g *Grid) computeStrides() {
	stride := 1
	for i := len(g.dims) - 1; i >= 0; i-- {
		g.strides[i] = stride
		stride *= g.dims[i]
	}
}

// Dims returns a copy of the dimension sizes.
func (g *Grid) Dims() []int {
	return append([]int(nil), g.dims...)
}

// Dimensions returns the number of dimensions.
func (g *Grid) Dimensions() int {
	return len(g.dims)
}

// Len returns the total number of voxels.
func (g *Grid) Len() int {
	return len(g.flat)
}

// index converts a multi-index to a flat offset. Panics on out-of-range
// or wrong-arity indices, like slice indexing.
func (g *Grid) index(idx []int) int {
	if len(idx) != len(g.dims) {
		panic(fmt.Sprintf("fluxed: index arity %d for %d-dimensional grid", len(idx), len(g.dims)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= g.dims[i] {
			panic(fmt.Sprintf("fluxed: index %d out of range [0, %d) in dimension %d", v, g.dims[i], i))
		}
		off += v * g.strides[i]
	}
	return off
}

// At returns the voxel value at the given multi-index.
func (g *Grid) At(idx ...int) uint8 {
	return g.flat[g.index(idx)]
}

// Set writes the voxel value at the given multi-index.
func (g *Grid) Set(v uint8, idx ...int) {
	g.flat[g.index(idx)] = v
}

// at returns the voxel value at a flat offset.
func (g *Grid) at(off int) uint8 {
	return g.flat[off]
}

// unravel converts a flat offset to a multi-index, writing into idx.
func (g *Grid) unravel(off int, idx []int) {
	for i, s := range g.strides {
		idx[i] = off / s
		off %= s
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		dims:    append([]int(nil), g.dims...),
		strides: append([]int(nil), g.strides...),
		flat:    append([]uint8(nil), g.flat...),
	}
}

// MarshalJSON implements json.Marshaler. The grid serializes as nested
// arrays: a 2x3 grid becomes [[a,b,c],[d,e,f]].
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.nested(0, 0))
}

// nested builds the nested-array form of the sub-grid rooted at off
// along dimension dim.
func (g *Grid) nested(dim, off int) any {
	// Innermost rows marshal as []int; []uint8 would serialize as base64.
	if dim == len(g.dims)-1 {
		row := make([]int, g.dims[dim])
		for i := range row {
			row[i] = int(g.flat[off+i])
		}
		return row
	}
	out := make([]any, g.dims[dim])
	for i := 0; i < g.dims[dim]; i++ {
		out[i] = g.nested(dim+1, off+i*g.strides[dim])
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler. It expects nested arrays of
// numbers and validates that all rows are rectangular.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	dims, flat, err := flatten(raw)
	if err != nil {
		return err
	}
	rebuilt, err := GridFromValues(dims, flat)
	if err != nil {
		return err
	}
	*g = *rebuilt
	return nil
}

// flatten walks a decoded nested-array value, inferring dimensions and
// collecting values in row-major order.
func flatten(raw any) ([]int, []uint8, error) {
	var dims []int
	node := raw
	for {
		arr, ok := node.([]any)
		if !ok {
			break
		}
		if len(arr) == 0 {
			return nil, nil, ErrEmptyGrid
		}
		dims = append(dims, len(arr))
		node = arr[0]
	}
	if len(dims) == 0 {
		return nil, nil, fmt.Errorf("fluxed: grid JSON must be an array, got %T", raw)
	}

	flat := make([]uint8, 0, product(dims))
	if err := collect(raw, dims, &flat); err != nil {
		return nil, nil, err
	}
	return dims, flat, nil
}

func collect(node any, dims []int, flat *[]uint8) error {
	if len(dims) == 0 {
		f, ok := node.(float64)
		if !ok {
			return fmt.Errorf("fluxed: grid JSON value %v is not a number", node)
		}
		if f != float64(uint8(f)) {
			return fmt.Errorf("fluxed: grid JSON value %v is not a uint8", f)
		}
		*flat = append(*flat, uint8(f))
		return nil
	}
	arr, ok := node.([]any)
	if !ok || len(arr) != dims[0] {
		return fmt.Errorf("%w: ragged nested arrays", ErrValueCount)
	}
	for _, child := range arr {
		if err := collect(child, dims[1:], flat); err != nil {
			return err
		}
	}
	return nil
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}
