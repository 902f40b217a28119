// Package fluxed computes the flux of an intensity distribution through
// N-dimensional shapes defined on voxel grids.
//
// A shape is a grid of 0s and 1s where 1s mark border voxels. The flux is
// the sum of intensity values over the region the border encloses, with
// intensity given by a Distribution evaluated at each voxel's coordinates.
// The fluxed/optimizer subpackage fits distribution parameters so a target
// shape's flux matches a reference flux (inverse modelling).
//
// Basic usage:
//
//	shape, err := fluxed.ShapeFromValues([]int{5, 5}, values)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	flux, err := shape.Flux(fluxed.Uniform{Level: 1})
package fluxed
