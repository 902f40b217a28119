package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario.yaml>",
	Short: "Report shape dimensions, closedness, and enclosed volume",
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

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "dimensions:\t%d\n", shape.Dimensions())
		fmt.Fprintf(w, "size:\t%v\n", shape.Dims())
		fmt.Fprintf(w, "closed:\t%v\n", shape.IsClosed())
		fmt.Fprintf(w, "enclosed volume:\t%d\n", shape.EnclosedVolume())
		return w.Flush()
	},
}
