// Command fluxed computes flux through N-dimensional voxel shapes and
// fits distribution parameters by inverse modelling.
//
// Usage:
//
//	fluxed [flags] <command> <scenario.yaml>
//
// Commands:
//
//	inspect - report shape dimensions, closedness, and enclosed volume
//	flux    - compute the flux of the scenario's distribution
//	match   - fit the scenario's target family to match the source flux
//
// Scenarios are YAML files describing a shape, optional coordinate axes,
// a distribution, and (for match) a target and distribution family.
package main

import (
	"fmt"
	"os"

	"github.com/fluxed-dev/fluxed/cmd/fluxed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
