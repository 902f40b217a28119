package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var fluxCmd = &cobra.Command{
	Use:   "flux <scenario.yaml>",
	Short: "Compute the flux of the scenario's distribution through its shape",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := LoadScenario(args[0])
		if err != nil {
			return err
		}

		shape, err := sc.Shape.Build()
		if err != nil {
			return err
		}
		axes, err := buildAxes(sc.Axes, shape.Dims())
		if err != nil {
			return err
		}
		dist, err := sc.Distribution.Build()
		if err != nil {
			return err
		}

		log.Debug().
			Ints("dims", shape.Dims()).
			Str("distribution", dist.Name()).
			Int("enclosed_volume", shape.EnclosedVolume()).
			Msg("scenario loaded")

		flux, err := shape.Flux(dist, axes...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g\n", flux)
		return nil
	},
}
