package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxed-dev/fluxed"
	"github.com/fluxed-dev/fluxed/optimizer"
)

const matchScenario = `
shape:
  values:
    - [1, 1, 1, 1, 1, 1, 1]
    - [1, 0, 0, 0, 0, 0, 1]
    - [1, 0, 1, 1, 1, 0, 1]
    - [1, 0, 1, 1, 1, 0, 1]
    - [1, 0, 1, 1, 1, 0, 1]
    - [1, 0, 0, 0, 0, 0, 1]
    - [1, 1, 1, 1, 1, 1, 1]
axes:
  - linspace: {lo: -10, hi: 10}
  - linspace: {lo: -10, hi: 10}
distribution:
  kind: normal2d
  params:
    mean_x: 1.5
    mean_y: 4.5
    stddev_x: 2.0
    stddev_y: 2.0
match:
  target:
    shape:
      hollow_box: [5, 5, 5]
    axes:
      - {}
      - {}
      - linspace: {lo: 100, hi: 200}
  family:
    kind: linear
    axis: 2
  initial_guess: [0.0, 1.0]
  bounds:
    lower: [0.001, -10]
    upper: [.inf, 10]
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(matchScenario))
	require.NoError(t, err)

	assert.Equal(t, "normal2d", sc.Distribution.Kind)
	assert.Len(t, sc.Axes, 2)
	require.NotNil(t, sc.Match)
	assert.Equal(t, []float64{0.0, 1.0}, sc.Match.InitialGuess)
	require.NotNil(t, sc.Match.Bounds)
	assert.Equal(t, []float64{0.001, -10}, sc.Match.Bounds.Lower)
}

func TestShapeSpecValues(t *testing.T) {
	sc, err := ParseScenario([]byte(matchScenario))
	require.NoError(t, err)

	shape, err := sc.Shape.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, shape.Dimensions())
	assert.Equal(t, []int{7, 7}, shape.Dims())
	assert.True(t, shape.IsClosed())
	assert.Equal(t, 16, shape.EnclosedVolume())
}

func TestShapeSpecHollowBox(t *testing.T) {
	spec := ShapeSpec{HollowBox: []int{5, 5, 5}}
	shape, err := spec.Build()
	require.NoError(t, err)
	assert.Equal(t, 27, shape.EnclosedVolume())
}

func TestShapeSpecConflict(t *testing.T) {
	spec := ShapeSpec{HollowBox: []int{3}, Values: []any{1}}
	_, err := spec.Build()
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestShapeSpecEmpty(t *testing.T) {
	var spec ShapeSpec
	_, err := spec.Build()
	assert.ErrorContains(t, err, "required")
}

func TestShapeSpecRagged(t *testing.T) {
	sc, err := ParseScenario([]byte("shape:\n  values:\n    - [1, 0]\n    - [1]\n"))
	require.NoError(t, err)
	_, err = sc.Shape.Build()
	assert.ErrorContains(t, err, "ragged")
}

func TestShapeSpecNonBinary(t *testing.T) {
	sc, err := ParseScenario([]byte("shape:\n  values: [[1, 2], [0, 1]]\n"))
	require.NoError(t, err)
	_, err = sc.Shape.Build()
	assert.ErrorIs(t, err, fluxed.ErrNotBinary)
}

func TestBuildAxes(t *testing.T) {
	specs := []AxisSpec{
		{},
		{Linspace: &LinspaceSpec{Lo: 0, Hi: 10}},
	}
	axes, err := buildAxes(specs, []int{3, 6})
	require.NoError(t, err)
	require.Len(t, axes, 2)
	assert.Equal(t, fluxed.Axis{0, 1, 2}, axes[0])
	assert.InDelta(t, 2.0, axes[1][1], 1e-12)
	assert.InDelta(t, 10.0, axes[1][5], 1e-12)
}

func TestBuildAxesSingleVoxelDimension(t *testing.T) {
	// A size-1 dimension with a linspace axis must not blow up.
	axes, err := buildAxes([]AxisSpec{{Linspace: &LinspaceSpec{Lo: 3, Hi: 7}}}, []int{1})
	require.NoError(t, err)
	require.Len(t, axes, 1)
	assert.Equal(t, fluxed.Axis{3}, axes[0])
}

func TestBuildAxesCountMismatch(t *testing.T) {
	_, err := buildAxes([]AxisSpec{{}}, []int{3, 3})
	assert.ErrorContains(t, err, "axes")
}

func TestDistSpecBuild(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
		want string
	}{
		{"uniform", DistSpec{Kind: "uniform", Params: map[string]float64{"level": 2}}, "uniform"},
		{"linear", DistSpec{Kind: "linear", Params: map[string]float64{"slope": 1}, Axis: 1}, "linear"},
		{"normal1d", DistSpec{Kind: "normal1d", Params: map[string]float64{"mean": 0, "stddev": 1}}, "normal1d"},
		{"normal2d", DistSpec{Kind: "normal2d", Params: map[string]float64{"stddev_x": 1, "stddev_y": 1}}, "normal2d"},
		{"normalnd", DistSpec{Kind: "normalnd", Means: []float64{0, 0}, StdDevs: []float64{1, 1}}, "normalnd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := tt.spec.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, dist.Name())
		})
	}
}

func TestDistSpecUnknownKind(t *testing.T) {
	spec := DistSpec{Kind: "parabolic"}
	_, err := spec.Build()
	assert.ErrorContains(t, err, "invalid distribution kind")
}

func TestDistSpecLinearAxisOutOfRange(t *testing.T) {
	// A scenario selecting an axis the shape does not have reports an
	// error when the flux is computed instead of crashing.
	sc, err := ParseScenario([]byte(`
shape:
  hollow_box: [5, 5]
distribution:
  kind: linear
  axis: 9
  params:
    slope: 1.0
`))
	require.NoError(t, err)

	shape, err := sc.Shape.Build()
	require.NoError(t, err)
	dist, err := sc.Distribution.Build()
	require.NoError(t, err)

	_, err = shape.Flux(dist)
	assert.ErrorIs(t, err, fluxed.ErrArityMismatch)
}

func TestDistSpecInvalidParams(t *testing.T) {
	spec := DistSpec{Kind: "normal1d", Params: map[string]float64{"mean": 0, "stddev": -1}}
	_, err := spec.Build()
	assert.Error(t, err)
}

func TestFamilySpecBuild(t *testing.T) {
	f, err := (&FamilySpec{Kind: "linear", Axis: 2}).Build()
	require.NoError(t, err)
	assert.Equal(t, optimizer.LinearFamily{Axis: 2}, f)

	_, err = (&FamilySpec{Kind: "normalnd"}).Build()
	assert.ErrorContains(t, err, "no fittable family")
}

func TestBuildMatchConfig(t *testing.T) {
	sc, err := ParseScenario([]byte(matchScenario))
	require.NoError(t, err)

	cfg, err := sc.BuildMatchConfig()
	require.NoError(t, err)

	assert.Equal(t, []int{7, 7}, cfg.SourceShape.Dims())
	assert.Equal(t, []int{5, 5, 5}, cfg.TargetShape.Dims())
	assert.Equal(t, optimizer.LinearFamily{Axis: 2}, cfg.TargetFamily)
	assert.Len(t, cfg.SourceAxes, 2)
	require.Len(t, cfg.TargetAxes, 3)
	assert.InDelta(t, 125.0, cfg.TargetAxes[2][1], 1e-9)
	require.NotNil(t, cfg.Bounds)
	assert.Equal(t, []float64{0.001, -10}, cfg.Bounds.Lower)
}

func TestBuildMatchConfigNoMatchBlock(t *testing.T) {
	sc, err := ParseScenario([]byte("shape:\n  hollow_box: [3, 3]\n"))
	require.NoError(t, err)
	_, err = sc.BuildMatchConfig()
	assert.ErrorContains(t, err, "no match block")
}
