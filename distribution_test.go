package fluxed

import (
	"encoding/json"
	"math"
	"testing"
)

func TestUniform(t *testing.T) {
	u := Uniform{Level: 2.5}
	assertFloat(t, "Intensity", u.Intensity(1, 2, 3), 2.5)
	if u.Arity() != 0 {
		t.Errorf("Arity = %d, want 0", u.Arity())
	}
	if u.Name() != "uniform" {
		t.Errorf("Name = %q, want uniform", u.Name())
	}
}

func TestLinear(t *testing.T) {
	l := Linear{Slope: 2, Intercept: -1, Axis: 1}
	assertFloat(t, "Intensity", l.Intensity(10, 3), 5)
}

func TestNormal1DPDF(t *testing.T) {
	n, err := NewNormal1D(0, 1)
	if err != nil {
		t.Fatalf("NewNormal1D: %v", err)
	}
	// Standard normal at the mean: 1/sqrt(2π).
	assertFloat(t, "Intensity(0)", n.Intensity(0), 1/math.Sqrt(2*math.Pi))
	// Symmetry.
	assertFloat(t, "symmetry", n.Intensity(1.3), n.Intensity(-1.3))
}

func TestNormal1DRejectsBadStdDev(t *testing.T) {
	if _, err := NewNormal1D(0, 0); err == nil {
		t.Error("NewNormal1D should reject stddev = 0")
	}
	if _, err := NewNormal1D(0, -1); err == nil {
		t.Error("NewNormal1D should reject negative stddev")
	}
}

func TestNormal2DSeparable(t *testing.T) {
	n, err := NewNormal2D(1, 2, 3, 4)
	if err != nil {
		t.Fatalf("NewNormal2D: %v", err)
	}
	want := gaussPDF(0.5, 1, 3) * gaussPDF(-2, 2, 4)
	assertFloat(t, "Intensity", n.Intensity(0.5, -2), want)
	if n.Arity() != 2 {
		t.Errorf("Arity = %d, want 2", n.Arity())
	}
}

func TestNormal2DRejectsBadStdDev(t *testing.T) {
	if _, err := NewNormal2D(0, 0, 1, 0); err == nil {
		t.Error("NewNormal2D should reject stddev = 0")
	}
}

func TestNormalND(t *testing.T) {
	n, err := NewNormalND([]float64{0, 0, 0}, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("NewNormalND: %v", err)
	}
	want := math.Pow(1/math.Sqrt(2*math.Pi), 3)
	assertFloat(t, "Intensity", n.Intensity(0, 0, 0), want)
	if n.Arity() != 3 {
		t.Errorf("Arity = %d, want 3", n.Arity())
	}
}

func TestNormalNDValidation(t *testing.T) {
	if _, err := NewNormalND(nil, nil); err == nil {
		t.Error("NewNormalND should reject empty means")
	}
	if _, err := NewNormalND([]float64{0, 0}, []float64{1}); err == nil {
		t.Error("NewNormalND should reject mismatched lengths")
	}
	if _, err := NewNormalND([]float64{0}, []float64{-1}); err == nil {
		t.Error("NewNormalND should reject negative stddev")
	}
}

func TestFuncAdapter(t *testing.T) {
	// A 1D linear profile applied to the z axis of a 3D grid.
	f := Func{
		Fn:    func(c ...float64) float64 { return 2*c[2] + 1 },
		NArgs: 3,
		Label: "linear-on-z",
	}
	assertFloat(t, "Intensity", f.Intensity(9, 9, 3), 7)
	if f.Arity() != 3 {
		t.Errorf("Arity = %d, want 3", f.Arity())
	}
	if f.Name() != "linear-on-z" {
		t.Errorf("Name = %q, want linear-on-z", f.Name())
	}
	if (Func{Fn: f.Fn}).Name() != "func" {
		t.Error("empty Label should fall back to \"func\"")
	}
}

// --- Kind ---

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUniform, "uniform"},
		{KindLinear, "linear"},
		{KindNormal1D, "normal1d"},
		{KindNormal2D, "normal2d"},
		{KindNormalND, "normalnd"},
		{Kind(0), "Kind(0)"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestKindJSONRoundTrip(t *testing.T) {
	for k := KindUniform; k <= KindNormalND; k++ {
		data, err := json.Marshal(k)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", k, err)
		}
		var back Kind
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != k {
			t.Errorf("round trip: got %v, want %v", back, k)
		}
	}
}

func TestKindInvalid(t *testing.T) {
	if _, err := json.Marshal(Kind(42)); err == nil {
		t.Error("Marshal should reject invalid kind")
	}
	var k Kind
	if err := k.UnmarshalText([]byte("parabolic")); err == nil {
		t.Error("UnmarshalText should reject unknown kind")
	}
}

func TestAxes(t *testing.T) {
	a := IndexAxis(4)
	for i, v := range a {
		assertFloat(t, "IndexAxis", v, float64(i))
	}
	l := Linspace(-1, 1, 5)
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i, v := range l {
		assertFloat(t, "Linspace", v, want[i])
	}
	r := Arange(3)
	if len(r) != 3 || r[2] != 2 {
		t.Errorf("Arange(3) = %v", r)
	}
}

func TestLinspaceShort(t *testing.T) {
	// numpy parity: a single point collapses to lo, zero points to empty.
	one := Linspace(5, 9, 1)
	if len(one) != 1 {
		t.Fatalf("Linspace(5, 9, 1) = %v, want one coordinate", one)
	}
	assertFloat(t, "Linspace(5, 9, 1)[0]", one[0], 5)

	if empty := Linspace(0, 1, 0); len(empty) != 0 {
		t.Errorf("Linspace(0, 1, 0) = %v, want empty", empty)
	}
	if empty := Linspace(0, 1, -3); len(empty) != 0 {
		t.Errorf("Linspace(0, 1, -3) = %v, want empty", empty)
	}
}
