package fluxed

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Distribution assigns an intensity value to every point in space.
// Implementations must be safe for concurrent use; the built-in
// distributions are immutable value types.
type Distribution interface {
	// Intensity evaluates the distribution at the given coordinates,
	// one value per grid dimension.
	Intensity(coords ...float64) float64

	// Arity returns the number of coordinates the distribution takes,
	// or 0 if it accepts any dimensionality.
	Arity() int

	// Name returns a short human-readable name.
	Name() string
}

// Kind identifies a built-in distribution family, used by configuration
// surfaces (YAML scenarios, the CLI) to name distributions.
type Kind int

const (
	KindUniform Kind = iota + 1
	KindLinear
	KindNormal1D
	KindNormal2D
	KindNormalND
)

var (
	kindNames = [...]string{
		KindUniform:  "uniform",
		KindLinear:   "linear",
		KindNormal1D: "normal1d",
		KindNormal2D: "normal2d",
		KindNormalND: "normalnd",
	}
	kindByName = map[string]Kind{
		"uniform":  KindUniform,
		"linear":   KindLinear,
		"normal1d": KindNormal1D,
		"normal2d": KindNormal2D,
		"normalnd": KindNormalND,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Kind(0)
	_ json.Marshaler           = Kind(0)
	_ json.Unmarshaler         = (*Kind)(nil)
	_ encoding.TextMarshaler   = Kind(0)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// IsValid reports whether k is a known distribution kind.
func (k Kind) IsValid() bool {
	return k >= KindUniform && k <= KindNormalND
}

// String returns the name of the kind ("uniform", "linear", ...).
// For invalid values it returns "Kind(n)".
func (k Kind) String() string {
	if k.IsValid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("fluxed: invalid distribution kind: %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := kindByName[string(text)]
	if !ok {
		return fmt.Errorf("fluxed: invalid distribution kind: %q", text)
	}
	*k = v
	return nil
}

// MarshalJSON implements json.Marshaler. Kind serializes as a JSON string.
func (k Kind) MarshalJSON() ([]byte, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fluxed: invalid distribution kind: %s", data)
	}
	return k.UnmarshalText([]byte(s))
}
