package fluxed

import "gonum.org/v1/gonum/floats"

// Axis holds the coordinate value for each grid index along one dimension.
// When no axes are supplied to FillIntensity or Flux, integer indices
// (0 to size-1) are used instead.
type Axis []float64

// IndexAxis returns the default axis 0, 1, ..., n-1.
func IndexAxis(n int) Axis {
	a := make(Axis, n)
	for i := range a {
		a[i] = float64(i)
	}
	return a
}

// Linspace returns n evenly spaced coordinates from lo to hi inclusive.
// Like numpy's linspace, n = 1 yields just lo and n <= 0 an empty axis.
func Linspace(lo, hi float64, n int) Axis {
	switch {
	case n <= 0:
		return Axis{}
	case n == 1:
		return Axis{lo}
	}
	return Axis(floats.Span(make([]float64, n), lo, hi))
}

// Arange is an alias for IndexAxis.
func Arange(n int) Axis {
	return IndexAxis(n)
}
