// Package commands implements the fluxed CLI commands.
package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "fluxed",
	Short:         "Flux through N-dimensional voxel shapes",
	Long:          "fluxed computes the flux of an intensity distribution through N-dimensional\nvoxel shapes and fits distribution parameters by inverse modelling.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(inspectCmd, fluxCmd, matchCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
