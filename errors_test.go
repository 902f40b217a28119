package fluxed

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrEmptyGrid,
		ErrValueCount,
		ErrNotBinary,
		ErrOpenShape,
		ErrAxisMismatch,
		ErrArityMismatch,
	}
	for _, err := range sentinels {
		if err == nil {
			t.Error("sentinel error is nil")
		}
		if !strings.HasPrefix(err.Error(), "fluxed: ") {
			t.Errorf("%q does not carry the package prefix", err)
		}
	}
}

func TestSentinelErrorsIsCheck(t *testing.T) {
	// Wrapping with fmt.Errorf %w preserves errors.Is chain.
	wrapped := fmt.Errorf("context: %w", ErrOpenShape)
	if !errors.Is(wrapped, ErrOpenShape) {
		t.Error("errors.Is(wrapped, ErrOpenShape) = false, want true")
	}
	if errors.Is(wrapped, ErrNotBinary) {
		t.Error("errors.Is(wrapped, ErrNotBinary) = true, want false")
	}
}
