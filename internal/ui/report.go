package ui

import (
	"fmt"
	"io"

	"github.com/dhcraft/histdem/internal/convert"
	"github.com/dhcraft/histdem/internal/validate"
)

// titleWidth truncates long dataset titles in section headers.
const titleWidth = 60

// ValidationReport writes a human-readable report, grouped per dataset,
// followed by a summary.
func ValidationReport(w io.Writer, report *validate.Report) {
	withIssues := 0

	for _, d := range report.Datasets {
		fmt.Fprintln(w, Header(fmt.Sprintf("Dataset %s: %s", d.ID, truncate(d.Title, titleWidth))))
		if len(d.Issues) == 0 {
			fmt.Fprintln(w, Success("no problems found"))
		} else {
			withIssues++
			fmt.Fprintln(w, Error(Count(len(d.Issues), "problem", "problems")))
			for _, issue := range d.Issues {
				fmt.Fprintf(w, "  - %s\n", issue)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, Header("Summary"))
	fmt.Fprintf(w, "Datasets checked: %d\n", len(report.Datasets))
	fmt.Fprintf(w, "Datasets with problems: %d\n", withIssues)
	fmt.Fprintf(w, "Problems found: %d\n", report.Total())
	if report.Clean() {
		fmt.Fprintln(w, Success("all data is consistent and complete"))
	} else {
		fmt.Fprintln(w, Error("fix the problems above before converting"))
	}
}

// ConversionSummary writes per-dataset outcomes of a batch run, with review
// flags as warnings, then a one-line total.
func ConversionSummary(w io.Writer, result *convert.Result) {
	for _, wr := range result.Written {
		fmt.Fprintln(w, Successf("dataset %s written to %s", wr.Dataset, FilePath(wr.Path)))
		for _, f := range wr.Flags {
			fmt.Fprintf(w, "  %s\n", Warningf("%s: %s", f.Code, f.Message))
		}
	}
	for _, f := range result.Failures {
		fmt.Fprintln(w, Errorf("dataset %s skipped: %v", f.Dataset, f.Err))
	}

	fmt.Fprintf(w, "\n%s\n", Infof("%d written, %d failed", len(result.Written), len(result.Failures)))
	if flagCount(result) > 0 {
		fmt.Fprintln(w, Hint(Info("flagged output needs a human pass before publication")))
	}
}

func flagCount(result *convert.Result) int {
	n := 0
	for _, wr := range result.Written {
		n += len(wr.Flags)
	}
	return n
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
