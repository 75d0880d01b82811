package cmd

import (
	"fmt"

	"broad-babel/feature/lookup"

	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <identifier>...",
	Short: "Run a raw lookup against the names table",
	Long: `Selects the output columns of every row whose input column matches.
A single identifier is compared with --operator; several identifiers (or --many)
become a set-membership lookup.`,
	Example: `  broad-babel query BRD-K18895904-001-16-1
  broad-babel query --input standard_key --output broad_sample,jump_id --operator LIKE 'GENE%'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		outputs, _ := cmd.Flags().GetStringSlice("output")
		operator, _ := cmd.Flags().GetString("operator")
		many, _ := cmd.Flags().GetBool("many")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.connect(cmd.Context(), nil); err != nil {
			return err
		}

		cols := make([]lookup.Column, 0, len(outputs))
		for _, c := range splitList(outputs) {
			cols = append(cols, lookup.Column(c))
		}

		rows, err := a.engine.RunQuery(cmd.Context(), queryFromArgs(args, many), lookup.Column(input), cols, lookup.Operator(operator))
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), rows)
	},
}

func queryFromArgs(args []string, many bool) lookup.Query {
	if len(args) == 1 && !many {
		return lookup.Single(args[0])
	}
	return lookup.Many(args...)
}

func init() {
	queryCmd.Flags().String("input", string(lookup.BroadSample), "Column the identifiers belong to")
	queryCmd.Flags().StringSlice("output", []string{string(lookup.StandardKey)}, "Column(s) to return")
	queryCmd.Flags().String("operator", "", "Comparison for a single identifier (=, !=, LIKE, GLOB)")
	queryCmd.Flags().Bool("many", false, "Treat a single identifier as a one-element list")
	RootCmd.AddCommand(queryCmd)
}
