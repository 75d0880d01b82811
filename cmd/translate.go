package cmd

import (
	"fmt"

	"broad-babel/feature/lookup"
	"broad-babel/feature/translate"

	"github.com/spf13/cobra"
)

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate <identifier>...",
	Short: "Translate identifiers, broad_sample to standard_key by default",
	Long: `Translates identifiers one-to-one. A single identifier prints its value;
several identifiers (or --many) print a mapping. The command fails when an
identifier has no match or more than one.`,
	Example: `  broad-babel translate BRD-K18895904-001-16-1
  broad-babel translate --from jump_id --to standard_key JCP2022_000001 JCP2022_000002`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		many, _ := cmd.Flags().GetBool("many")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.connect(cmd.Context(), nil); err != nil {
			return err
		}

		tr := translate.New(a.engine, a.logger)
		result, err := tr.Translate(cmd.Context(), queryFromArgs(args, many), lookup.Column(from), lookup.Column(to))
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		if result.IsScalar() {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Value)
			return err
		}
		return printJSON(cmd.OutOrStdout(), result.Mapping)
	},
}

func init() {
	translateCmd.Flags().String("from", string(lookup.BroadSample), "Column the identifiers belong to")
	translateCmd.Flags().String("to", string(lookup.StandardKey), "Column to translate into")
	translateCmd.Flags().Bool("many", false, "Print a mapping even for a single identifier")
	RootCmd.AddCommand(translateCmd)
}
