package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and verify the lookup database",
	Long:  `Makes sure a verified copy of names.db is in the cache directory and prints its path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if a.fetcher == nil {
			return errors.New("the configured database driver does not use a local file")
		}

		path, err := a.fetcher.Ensure(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}
