package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fluxed-dev/fluxed/optimizer"
)

var matchCmd = &cobra.Command{
	Use:   "match <scenario.yaml>",
	Short: "Fit the target family's parameters to match the source flux",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := LoadScenario(args[0])
		if err != nil {
			return err
		}
		cfg, err := sc.BuildMatchConfig()
		if err != nil {
			return err
		}

		log.Debug().
			Ints("source_dims", cfg.SourceShape.Dims()).
			Ints("target_dims", cfg.TargetShape.Dims()).
			Strs("parameters", cfg.TargetFamily.ParamNames()).
			Msg("starting match")

		res, err := optimizer.MatchFluxParameters(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		log.Debug().
			Int("evaluations", res.Evaluations).
			Str("status", res.Status).
			Msg("match finished")

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "success:\t%v\n", res.Success)
		fmt.Fprintf(w, "status:\t%s\n", res.Status)
		fmt.Fprintf(w, "target flux:\t%.6f\n", res.TargetFlux)
		fmt.Fprintf(w, "final flux:\t%.6f\n", res.FinalFlux)
		for i, name := range cfg.TargetFamily.ParamNames() {
			fmt.Fprintf(w, "%s:\t%.6f\n", name, res.Raw[i])
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if !res.Success {
			return fmt.Errorf("fit did not converge (status %s)", res.Status)
		}
		return nil
	},
}
