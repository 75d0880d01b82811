package cmd

import (
	"fmt"

	"broad-babel/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the lookup table as CSV",
	Long: `Writes the whole table as CSV: a header with the column names in storage
order, then one line per record. With --upload the CSV is stored in the
configured bucket instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		table, _ := cmd.Flags().GetString("table")
		upload, _ := cmd.Flags().GetBool("upload")
		object, _ := cmd.Flags().GetString("object")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.connect(cmd.Context(), nil); err != nil {
			return err
		}
		if table == "" {
			table = a.engine.Schema().Table()
		}

		exporter := export.New(a.db, a.store, a.cfg.Storage.Bucket, a.logger)
		if upload {
			info, err := exporter.Upload(cmd.Context(), table, object)
			if err != nil {
				return fmt.Errorf("export upload failed: %w", err)
			}
			a.logger.Info("Export stored", zap.String("bucket", info.Bucket), zap.String("object", info.Key))
			return nil
		}

		if err := exporter.ExportCSV(cmd.Context(), output, table); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "exported.csv", "Destination file")
	exportCmd.Flags().String("table", "", "Table to export (defaults to the lookup table)")
	exportCmd.Flags().Bool("upload", false, "Upload the CSV to the storage bucket")
	exportCmd.Flags().String("object", "", "Object name for --upload (defaults to <table>.csv)")
	RootCmd.AddCommand(exportCmd)
}
