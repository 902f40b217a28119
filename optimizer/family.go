package optimizer

import (
	"fmt"

	"github.com/fluxed-dev/fluxed"
)

// Family is a parameterized family of distributions. New builds the
// family member for a parameter vector; ParamNames gives the vector's
// layout and length.
type Family interface {
	New(params []float64) (fluxed.Distribution, error)
	ParamNames() []string
}

// UniformFamily is constant intensity with a single "level" parameter.
type UniformFamily struct{}

// New returns Uniform{Level: params[0]}.
func (UniformFamily) New(params []float64) (fluxed.Distribution, error) {
	if err := checkArity("uniform", params, 1); err != nil {
		return nil, err
	}
	return fluxed.Uniform{Level: params[0]}, nil
}

// ParamNames returns ["level"].
func (UniformFamily) ParamNames() []string { return []string{"level"} }

// LinearFamily is Slope*x + Intercept along the coordinate selected by
// Axis, with parameters ["slope", "intercept"].
type LinearFamily struct {
	Axis int
}

// New returns a Linear distribution on the family's axis.
func (f LinearFamily) New(params []float64) (fluxed.Distribution, error) {
	if err := checkArity("linear", params, 2); err != nil {
		return nil, err
	}
	return fluxed.Linear{Slope: params[0], Intercept: params[1], Axis: f.Axis}, nil
}

// ParamNames returns ["slope", "intercept"].
func (LinearFamily) ParamNames() []string { return []string{"slope", "intercept"} }

// Normal1DFamily is the 1D gaussian with parameters ["mean", "stddev"].
type Normal1DFamily struct{}

// New returns a Normal1D distribution.
func (Normal1DFamily) New(params []float64) (fluxed.Distribution, error) {
	if err := checkArity("normal1d", params, 2); err != nil {
		return nil, err
	}
	return fluxed.NewNormal1D(params[0], params[1])
}

// ParamNames returns ["mean", "stddev"].
func (Normal1DFamily) ParamNames() []string { return []string{"mean", "stddev"} }

// Normal2DFamily is the separable 2D gaussian with parameters
// ["mean_x", "mean_y", "stddev_x", "stddev_y"].
type Normal2DFamily struct{}

// New returns a Normal2D distribution.
func (Normal2DFamily) New(params []float64) (fluxed.Distribution, error) {
	if err := checkArity("normal2d", params, 4); err != nil {
		return nil, err
	}
	return fluxed.NewNormal2D(params[0], params[1], params[2], params[3])
}

// ParamNames returns ["mean_x", "mean_y", "stddev_x", "stddev_y"].
func (Normal2DFamily) ParamNames() []string {
	return []string{"mean_x", "mean_y", "stddev_x", "stddev_y"}
}

func checkArity(name string, params []float64, want int) error {
	if len(params) != want {
		return fmt.Errorf("%w: %s family takes %d parameters, got %d",
			ErrBadGuess, name, want, len(params))
	}
	return nil
}
