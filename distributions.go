package fluxed

import (
	"fmt"
	"math"
)

// Uniform is a constant intensity in any dimensionality.
type Uniform struct {
	Level float64
}

// Intensity returns the constant level regardless of position.
func (u Uniform) Intensity(coords ...float64) float64 { return u.Level }

// Arity returns 0: Uniform accepts any dimensionality.
func (u Uniform) Arity() int { return 0 }

// Name returns "uniform".
func (u Uniform) Name() string { return "uniform" }

// Linear is Slope*x + Intercept along one selected coordinate, usable in
// any dimensionality. Axis selects the coordinate; Flux and FillIntensity
// reject an Axis outside the grid's dimensionality.
type Linear struct {
	Slope     float64
	Intercept float64
	Axis      int
}

// Intensity returns Slope*coords[Axis] + Intercept.
func (l Linear) Intensity(coords ...float64) float64 {
	return l.Slope*coords[l.Axis] + l.Intercept
}

// selectedAxis implements axisSelector.
func (l Linear) selectedAxis() int { return l.Axis }

// Arity returns 0: Linear accepts any dimensionality with Axis in range.
func (l Linear) Arity() int { return 0 }

// Name returns "linear".
func (l Linear) Name() string { return "linear" }

// Normal1D is the one-dimensional gaussian probability density.
type Normal1D struct {
	Mean   float64
	StdDev float64
}

// NewNormal1D creates a Normal1D, rejecting non-positive standard deviation.
func NewNormal1D(mean, stddev float64) (Normal1D, error) {
	if stddev <= 0 {
		return Normal1D{}, fmt.Errorf("fluxed: normal1d stddev %f must be positive", stddev)
	}
	return Normal1D{Mean: mean, StdDev: stddev}, nil
}

// Intensity returns the gaussian pdf at coords[0].
func (n Normal1D) Intensity(coords ...float64) float64 {
	return gaussPDF(coords[0], n.Mean, n.StdDev)
}

// Arity returns 1.
func (n Normal1D) Arity() int { return 1 }

// Name returns "normal1d".
func (n Normal1D) Name() string { return "normal1d" }

// Normal2D is the product of two axis-aligned gaussian densities.
type Normal2D struct {
	MeanX, MeanY     float64
	StdDevX, StdDevY float64
}

// NewNormal2D creates a Normal2D, rejecting non-positive standard deviations.
func NewNormal2D(meanX, meanY, stddevX, stddevY float64) (Normal2D, error) {
	if stddevX <= 0 || stddevY <= 0 {
		return Normal2D{}, fmt.Errorf("fluxed: normal2d stddevs (%f, %f) must be positive", stddevX, stddevY)
	}
	return Normal2D{MeanX: meanX, MeanY: meanY, StdDevX: stddevX, StdDevY: stddevY}, nil
}

// Intensity returns the separable 2D gaussian pdf at (coords[0], coords[1]).
func (n Normal2D) Intensity(coords ...float64) float64 {
	return gaussPDF(coords[0], n.MeanX, n.StdDevX) * gaussPDF(coords[1], n.MeanY, n.StdDevY)
}

// Arity returns 2.
func (n Normal2D) Arity() int { return 2 }

// Name returns "normal2d".
func (n Normal2D) Name() string { return "normal2d" }

// NormalND is the product of per-axis gaussian densities. Means and
// StdDevs must have equal length, one entry per grid dimension.
type NormalND struct {
	Means   []float64
	StdDevs []float64
}

// NewNormalND creates a NormalND, validating lengths and standard deviations.
func NewNormalND(means, stddevs []float64) (NormalND, error) {
	if len(means) == 0 || len(means) != len(stddevs) {
		return NormalND{}, fmt.Errorf("fluxed: normalnd needs matching means (%d) and stddevs (%d)", len(means), len(stddevs))
	}
	for i, s := range stddevs {
		if s <= 0 {
			return NormalND{}, fmt.Errorf("fluxed: normalnd stddev[%d] = %f must be positive", i, s)
		}
	}
	return NormalND{
		Means:   append([]float64(nil), means...),
		StdDevs: append([]float64(nil), stddevs...),
	}, nil
}

// Intensity returns the product of the per-axis gaussian pdfs.
func (n NormalND) Intensity(coords ...float64) float64 {
	p := 1.0
	for i, x := range coords {
		p *= gaussPDF(x, n.Means[i], n.StdDevs[i])
	}
	return p
}

// Arity returns the number of dimensions.
func (n NormalND) Arity() int { return len(n.Means) }

// Name returns "normalnd".
func (n NormalND) Name() string { return "normalnd" }

// Func adapts an arbitrary function to the Distribution interface.
// NArgs of 0 accepts any dimensionality. It covers the same ground as the
// original project's ad-hoc wrapper distributions, e.g. a 1D profile
// applied to the z axis of a 3D grid:
//
//	zLinear := fluxed.Func{
//	    Fn:    func(c ...float64) float64 { return 2*c[2] + 1 },
//	    NArgs: 3,
//	    Label: "linear-on-z",
//	}
type Func struct {
	Fn    func(coords ...float64) float64
	NArgs int
	Label string
}

// Intensity calls Fn.
func (f Func) Intensity(coords ...float64) float64 { return f.Fn(coords...) }

// Arity returns NArgs.
func (f Func) Arity() int { return f.NArgs }

// Name returns Label, or "func" when empty.
func (f Func) Name() string {
	if f.Label == "" {
		return "func"
	}
	return f.Label
}

// gaussPDF is the 1D gaussian probability density.
func gaussPDF(x, mean, stddev float64) float64 {
	z := (x - mean) / stddev
	return math.Exp(-0.5*z*z) / (stddev * math.Sqrt(2*math.Pi))
}
