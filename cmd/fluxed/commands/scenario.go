package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluxed-dev/fluxed"
	"github.com/fluxed-dev/fluxed/optimizer"
)

// Scenario is the top-level YAML document consumed by the CLI.
type Scenario struct {
	Shape        ShapeSpec  `yaml:"shape"`
	Axes         []AxisSpec `yaml:"axes"`
	Distribution DistSpec   `yaml:"distribution"`
	Match        *MatchSpec `yaml:"match"`
}

// ShapeSpec describes a shape either as nested value arrays or as a
// hollow_box dimension shortcut.
type ShapeSpec struct {
	HollowBox []int `yaml:"hollow_box"`
	Values    any   `yaml:"values"`
}

// AxisSpec describes one coordinate axis. A nil Linspace means integer
// indices.
type AxisSpec struct {
	Linspace *LinspaceSpec `yaml:"linspace"`
}

// LinspaceSpec is an evenly spaced coordinate range.
type LinspaceSpec struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// DistSpec names a distribution family member by kind and parameters.
type DistSpec struct {
	Kind    string             `yaml:"kind"`
	Params  map[string]float64 `yaml:"params"`
	Axis    int                `yaml:"axis"`    // linear only
	Means   []float64          `yaml:"means"`   // normalnd only
	StdDevs []float64          `yaml:"stddevs"` // normalnd only
}

// FamilySpec names the distribution family fitted by match.
type FamilySpec struct {
	Kind string `yaml:"kind"`
	Axis int    `yaml:"axis"` // linear only
}

// TargetSpec is the shape whose flux must match the source flux.
type TargetSpec struct {
	Shape ShapeSpec  `yaml:"shape"`
	Axes  []AxisSpec `yaml:"axes"`
}

// BoundsSpec are optional box constraints on the fitted parameters.
type BoundsSpec struct {
	Lower []float64 `yaml:"lower"`
	Upper []float64 `yaml:"upper"`
}

// MatchSpec configures the inverse-modelling run.
type MatchSpec struct {
	Target        TargetSpec  `yaml:"target"`
	Family        FamilySpec  `yaml:"family"`
	InitialGuess  []float64   `yaml:"initial_guess"`
	Bounds        *BoundsSpec `yaml:"bounds"`
	MaxIterations int         `yaml:"max_iterations"`
	Tolerance     float64     `yaml:"tolerance"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}

// Build constructs the shape from the spec.
func (s *ShapeSpec) Build() (*fluxed.Shape, error) {
	switch {
	case len(s.HollowBox) > 0 && s.Values != nil:
		return nil, fmt.Errorf("shape: hollow_box and values are mutually exclusive")
	case len(s.HollowBox) > 0:
		return fluxed.HollowBox(s.HollowBox...)
	case s.Values != nil:
		dims, values, err := flattenYAML(s.Values)
		if err != nil {
			return nil, fmt.Errorf("shape values: %w", err)
		}
		return fluxed.ShapeFromValues(dims, values)
	default:
		return nil, fmt.Errorf("shape: hollow_box or values is required")
	}
}

// flattenYAML walks decoded nested YAML sequences, inferring dimensions
// and collecting voxel values in row-major order.
func flattenYAML(raw any) ([]int, []uint8, error) {
	var dims []int
	node := raw
	for {
		arr, ok := node.([]any)
		if !ok {
			break
		}
		if len(arr) == 0 {
			return nil, nil, fmt.Errorf("empty sequence")
		}
		dims = append(dims, len(arr))
		node = arr[0]
	}
	if len(dims) == 0 {
		return nil, nil, fmt.Errorf("values must be a sequence, got %T", raw)
	}

	var values []uint8
	var collect func(node any, dims []int) error
	collect = func(node any, dims []int) error {
		if len(dims) == 0 {
			n, ok := node.(int)
			if !ok {
				return fmt.Errorf("voxel value %v is not an integer", node)
			}
			if n < 0 || n > 255 {
				return fmt.Errorf("voxel value %d out of range", n)
			}
			values = append(values, uint8(n))
			return nil
		}
		arr, ok := node.([]any)
		if !ok || len(arr) != dims[0] {
			return fmt.Errorf("ragged nested sequences")
		}
		for _, child := range arr {
			if err := collect(child, dims[1:]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(raw, dims); err != nil {
		return nil, nil, err
	}
	return dims, values, nil
}

// buildAxes constructs coordinate axes for a shape's dimension sizes.
// An empty spec list yields nil (integer indices).
func buildAxes(specs []AxisSpec, dims []int) ([]fluxed.Axis, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	if len(specs) != len(dims) {
		return nil, fmt.Errorf("axes: got %d specs for %d dimensions", len(specs), len(dims))
	}
	axes := make([]fluxed.Axis, len(specs))
	for i, spec := range specs {
		if spec.Linspace != nil {
			axes[i] = fluxed.Linspace(spec.Linspace.Lo, spec.Linspace.Hi, dims[i])
		} else {
			axes[i] = fluxed.IndexAxis(dims[i])
		}
	}
	return axes, nil
}

// Build constructs the distribution from the spec.
func (d *DistSpec) Build() (fluxed.Distribution, error) {
	var kind fluxed.Kind
	if err := kind.UnmarshalText([]byte(d.Kind)); err != nil {
		return nil, err
	}
	p := func(name string) float64 { return d.Params[name] }
	switch kind {
	case fluxed.KindUniform:
		return fluxed.Uniform{Level: p("level")}, nil
	case fluxed.KindLinear:
		return fluxed.Linear{Slope: p("slope"), Intercept: p("intercept"), Axis: d.Axis}, nil
	case fluxed.KindNormal1D:
		return fluxed.NewNormal1D(p("mean"), p("stddev"))
	case fluxed.KindNormal2D:
		return fluxed.NewNormal2D(p("mean_x"), p("mean_y"), p("stddev_x"), p("stddev_y"))
	case fluxed.KindNormalND:
		return fluxed.NewNormalND(d.Means, d.StdDevs)
	default:
		return nil, fmt.Errorf("distribution: unsupported kind %q", d.Kind)
	}
}

// Build constructs the optimizer family from the spec.
func (f *FamilySpec) Build() (optimizer.Family, error) {
	var kind fluxed.Kind
	if err := kind.UnmarshalText([]byte(f.Kind)); err != nil {
		return nil, err
	}
	switch kind {
	case fluxed.KindUniform:
		return optimizer.UniformFamily{}, nil
	case fluxed.KindLinear:
		return optimizer.LinearFamily{Axis: f.Axis}, nil
	case fluxed.KindNormal1D:
		return optimizer.Normal1DFamily{}, nil
	case fluxed.KindNormal2D:
		return optimizer.Normal2DFamily{}, nil
	default:
		return nil, fmt.Errorf("family: no fittable family for kind %q", f.Kind)
	}
}

// BuildMatchConfig assembles the optimizer configuration from a scenario.
func (sc *Scenario) BuildMatchConfig() (optimizer.MatchConfig, error) {
	var cfg optimizer.MatchConfig
	if sc.Match == nil {
		return cfg, fmt.Errorf("scenario has no match block")
	}

	source, err := sc.Shape.Build()
	if err != nil {
		return cfg, fmt.Errorf("source %w", err)
	}
	sourceAxes, err := buildAxes(sc.Axes, source.Dims())
	if err != nil {
		return cfg, fmt.Errorf("source %w", err)
	}
	sourceDist, err := sc.Distribution.Build()
	if err != nil {
		return cfg, fmt.Errorf("source %w", err)
	}

	target, err := sc.Match.Target.Shape.Build()
	if err != nil {
		return cfg, fmt.Errorf("target %w", err)
	}
	targetAxes, err := buildAxes(sc.Match.Target.Axes, target.Dims())
	if err != nil {
		return cfg, fmt.Errorf("target %w", err)
	}
	family, err := sc.Match.Family.Build()
	if err != nil {
		return cfg, err
	}

	cfg = optimizer.MatchConfig{
		SourceShape:   source,
		SourceDist:    sourceDist,
		SourceAxes:    sourceAxes,
		TargetShape:   target,
		TargetFamily:  family,
		TargetAxes:    targetAxes,
		InitialGuess:  sc.Match.InitialGuess,
		MaxIterations: sc.Match.MaxIterations,
		Tolerance:     sc.Match.Tolerance,
	}
	if sc.Match.Bounds != nil {
		cfg.Bounds = &optimizer.Bounds{
			Lower: sc.Match.Bounds.Lower,
			Upper: sc.Match.Bounds.Upper,
		}
	}
	return cfg, nil
}
