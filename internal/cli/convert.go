package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhcraft/histdem/internal/convert"
	"github.com/dhcraft/histdem/internal/gazetteer"
	"github.com/dhcraft/histdem/internal/table"
	"github.com/dhcraft/histdem/internal/tei"
	"github.com/dhcraft/histdem/internal/ui"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.csv> [output-dir]",
	Short: "Convert the metadata table into TEI documents",
	Long: `Reads the column-oriented metadata spreadsheet and writes one TEI file
per dataset into the output directory.

A dataset that fails to decode is skipped and reported; the rest of the
batch still runs. A malformed table or an incomplete template aborts the
whole run.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := table.ReadFile(args[0])
		if err != nil {
			return tableError(err)
		}

		tpl, err := tei.LoadTemplate(effectiveTemplate())
		if err != nil {
			return templateError(err)
		}

		builder, err := tei.NewBuilder(tpl, gazetteer.New(getConfig().Gazetteer), getConfig().FolderMap())
		if err != nil {
			return templateError(err)
		}

		outDir := getConfig().EffectiveOutputDir()
		if len(args) > 1 {
			outDir = args[1]
		}

		result, err := convert.New(builder, outDir).Run(tbl)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrFileWriteError, err)
		}

		ui.ConversionSummary(os.Stdout, result)

		if len(result.Failures) > 0 {
			return fmt.Errorf("%s: %d of %d datasets produced no output",
				ErrPartialConversion, len(result.Failures), len(tbl.Columns))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
