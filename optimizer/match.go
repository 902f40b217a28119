package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/fluxed-dev/fluxed"
)

var (
	// ErrMissingShapes is returned when a source or target shape is nil.
	ErrMissingShapes = errors.New("optimizer: source and target shapes are required")

	// ErrNoFamily is returned when no target distribution family is provided.
	ErrNoFamily = errors.New("optimizer: no target distribution family provided")

	// ErrBadGuess is returned when the initial guess length does not match
	// the family's parameter count.
	ErrBadGuess = errors.New("optimizer: initial guess does not match family parameters")

	// ErrBadBounds is returned for malformed parameter bounds.
	ErrBadBounds = errors.New("optimizer: invalid parameter bounds")
)

// Bounds are box constraints on the parameter vector. A nil Lower or
// Upper slice leaves that side unbounded, as does -Inf/+Inf per entry.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// validate checks bounds against a parameter count.
func (b *Bounds) validate(n int) error {
	if b.Lower != nil && len(b.Lower) != n {
		return fmt.Errorf("%w: %d lower bounds for %d parameters", ErrBadBounds, len(b.Lower), n)
	}
	if b.Upper != nil && len(b.Upper) != n {
		return fmt.Errorf("%w: %d upper bounds for %d parameters", ErrBadBounds, len(b.Upper), n)
	}
	for i := 0; i < n; i++ {
		if b.lower(i) > b.upper(i) {
			return fmt.Errorf("%w: lower %f > upper %f at parameter %d", ErrBadBounds, b.lower(i), b.upper(i), i)
		}
	}
	return nil
}

func (b *Bounds) lower(i int) float64 {
	if b == nil || b.Lower == nil {
		return math.Inf(-1)
	}
	return b.Lower[i]
}

func (b *Bounds) upper(i int) float64 {
	if b == nil || b.Upper == nil {
		return math.Inf(1)
	}
	return b.Upper[i]
}

// clamp writes the projection of x into the bounds to dst and returns the
// squared distance between x and the projection.
func (b *Bounds) clamp(dst, x []float64) float64 {
	excursion := 0.0
	for i, v := range x {
		c := math.Min(math.Max(v, b.lower(i)), b.upper(i))
		excursion += (v - c) * (v - c)
		dst[i] = c
	}
	return excursion
}

// MatchConfig configures an inverse-modelling run.
// Zero values for the optimizer knobs produce sensible defaults.
type MatchConfig struct {
	SourceShape *fluxed.Shape       // reference shape
	SourceDist  fluxed.Distribution // reference distribution
	SourceAxes  []fluxed.Axis       // nil means integer indices

	TargetShape  *fluxed.Shape // shape whose flux must match the source
	TargetFamily Family        // distribution family being fitted
	TargetAxes   []fluxed.Axis // nil means integer indices

	InitialGuess []float64 // starting parameter vector
	Bounds       *Bounds   // nil → unconstrained

	MaxIterations int     // default 1000
	Tolerance     float64 // converger absolute tolerance, default 1e-10
}

// MatchResult reports the outcome of an inverse-modelling run.
type MatchResult struct {
	Success     bool               `json:"success"`
	Status      string             `json:"status"`
	TargetFlux  float64            `json:"target_flux"` // the source flux being matched
	FinalFlux   float64            `json:"final_flux"`
	Parameters  map[string]float64 `json:"parameters"`
	Raw         []float64          `json:"raw"` // fitted vector in ParamNames order
	Evaluations int                `json:"evaluations"`
}

// successTol is the relative flux residual below which a fit is reported
// as successful.
const successTol = 1e-4

// MatchFluxParameters fits the target family's parameters so that the
// flux through the target shape matches the flux of the source
// shape/distribution pair.
//
// The squared flux residual is minimized with Nelder-Mead starting from
// InitialGuess. Bounds, when given, are enforced by projecting trial
// points into the feasible region and penalizing the excursion; the
// reported parameters are always within bounds.
//
// On context cancellation the best parameters found so far are returned
// together with the context's error.
func MatchFluxParameters(ctx context.Context, cfg MatchConfig) (*MatchResult, error) {
	if cfg.SourceShape == nil || cfg.TargetShape == nil {
		return nil, ErrMissingShapes
	}
	if cfg.TargetFamily == nil {
		return nil, ErrNoFamily
	}

	names := cfg.TargetFamily.ParamNames()
	if len(cfg.InitialGuess) != len(names) {
		return nil, fmt.Errorf("%w: got %d values for parameters %v",
			ErrBadGuess, len(cfg.InitialGuess), names)
	}
	if cfg.Bounds != nil {
		if err := cfg.Bounds.validate(len(names)); err != nil {
			return nil, err
		}
	}

	maxIter := cfg.MaxIterations
	if maxIter == 0 {
		maxIter = 1000
	}
	tol := cfg.Tolerance
	if tol == 0 {
		tol = 1e-10
	}

	sourceFlux, err := cfg.SourceShape.Flux(cfg.SourceDist, cfg.SourceAxes...)
	if err != nil {
		return nil, fmt.Errorf("optimizer: source flux: %w", err)
	}
	if !cfg.TargetShape.IsClosed() {
		return nil, fmt.Errorf("optimizer: target flux: %w", fluxed.ErrOpenShape)
	}

	scale := math.Max(1, math.Abs(sourceFlux))
	penaltyWeight := 1e3 * scale * scale

	projected := make([]float64, len(names))
	targetFlux := func(p []float64) (float64, error) {
		dist, err := cfg.TargetFamily.New(p)
		if err != nil {
			return 0, err
		}
		return cfg.TargetShape.Flux(dist, cfg.TargetAxes...)
	}

	// Evaluate once at the projected initial guess so configuration
	// errors (axis selection, axes shape) surface before the search.
	cfg.Bounds.clamp(projected, cfg.InitialGuess)
	if _, err := targetFlux(projected); err != nil {
		return nil, fmt.Errorf("optimizer: initial parameters: %w", err)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			excursion := cfg.Bounds.clamp(projected, x)
			flux, err := targetFlux(projected)
			if err != nil {
				// Infeasible point (e.g. non-positive stddev with no
				// bounds set); push the simplex away from it.
				return math.Inf(1)
			}
			r := flux - sourceFlux
			return r*r + penaltyWeight*excursion
		},
		Status: func() (optimize.Status, error) {
			if err := ctx.Err(); err != nil {
				return optimize.Failure, err
			}
			return optimize.NotTerminated, nil
		},
	}

	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: 50,
		},
	}

	result, optErr := optimize.Minimize(problem, cfg.InitialGuess, settings, &optimize.NelderMead{})
	if result == nil {
		return nil, optErr
	}

	// Report the projected (in-bounds) solution.
	raw := make([]float64, len(names))
	cfg.Bounds.clamp(raw, result.X)

	finalFlux, err := targetFlux(raw)
	if err != nil {
		return nil, fmt.Errorf("optimizer: final flux: %w", err)
	}

	params := make(map[string]float64, len(names))
	for i, name := range names {
		params[name] = raw[i]
	}

	res := &MatchResult{
		Status:      result.Status.String(),
		TargetFlux:  sourceFlux,
		FinalFlux:   finalFlux,
		Parameters:  params,
		Raw:         raw,
		Evaluations: result.Stats.FuncEvaluations,
	}
	res.Success = optErr == nil &&
		result.Status != optimize.Failure &&
		math.Abs(finalFlux-sourceFlux) <= successTol*scale

	if optErr != nil {
		return res, optErr
	}
	return res, nil
}

// FluxResidual returns |targetShape flux − sourceFlux| for a fitted
// parameter vector, a convenience for verifying a match result.
func FluxResidual(cfg MatchConfig, params []float64) (float64, error) {
	dist, err := cfg.TargetFamily.New(params)
	if err != nil {
		return 0, err
	}
	sourceFlux, err := cfg.SourceShape.Flux(cfg.SourceDist, cfg.SourceAxes...)
	if err != nil {
		return 0, err
	}
	flux, err := cfg.TargetShape.Flux(dist, cfg.TargetAxes...)
	if err != nil {
		return 0, err
	}
	return math.Abs(flux - sourceFlux), nil
}
