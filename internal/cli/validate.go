package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhcraft/histdem/internal/table"
	"github.com/dhcraft/histdem/internal/ui"
	"github.com/dhcraft/histdem/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input.csv>",
	Short: "Check the metadata table for problems",
	Long: `Checks every dataset column for missing required fields, malformed
file entries, inconsistent data filenames, date problems, bad identifiers
and language codes, and referenced files that do not exist on disk.

All problems are collected and reported together; nothing short-circuits.
The command exits non-zero when any problem was found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := table.ReadFile(args[0])
		if err != nil {
			return tableError(err)
		}

		v := validate.New(getConfig().FolderMap(), effectiveBasePath())
		report := v.ValidateTable(tbl)
		ui.ValidationReport(os.Stdout, report)

		if !report.Clean() {
			return fmt.Errorf("%s: %d problem(s) found", ErrValidationFailed, report.Total())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
