package cmd

import (
	"errors"

	"broad-babel/feature/integrity"

	"github.com/spf13/cobra"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the lookup database and its source",
	Long: `Verifies that the lookup table has every expected column, that the cached
database file matches its known hash, and that the bucket holds the source
object when storage is enabled. Prints a JSON report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.connect(cmd.Context(), nil); err != nil {
			return err
		}

		svc := integrity.NewService(a.db, a.engine.Schema().Table(), a.fetcher,
			a.store, a.cfg.Storage.Bucket, a.sourceObjects(), a.logger)
		report, ok := svc.RunAll(cmd.Context())
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if !ok {
			return errors.New("integrity checks failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
}
