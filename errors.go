package fluxed

import "errors"

// Sentinel errors for the fluxed package.
// Use errors.Is to check: errors.Is(err, fluxed.ErrOpenShape)
var (
	ErrEmptyGrid     = errors.New("fluxed: grid must have at least one dimension of size >= 1")
	ErrValueCount    = errors.New("fluxed: value count does not match grid dimensions")
	ErrNotBinary     = errors.New("fluxed: shape grid must contain only 0s and 1s")
	ErrOpenShape     = errors.New("fluxed: shape is not closed, flux is ill-defined")
	ErrAxisMismatch  = errors.New("fluxed: coordinate axes do not match grid dimensions")
	ErrArityMismatch = errors.New("fluxed: distribution arity does not match grid dimensions")
)
