package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhcraft/histdem/internal/convert"
	"github.com/dhcraft/histdem/internal/tei"
	"github.com/dhcraft/histdem/internal/validate"
)

func disableStyling(t *testing.T) {
	t.Helper()
	old := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = old })
}

func TestValidationReport(t *testing.T) {
	disableStyling(t)

	report := &validate.Report{Datasets: []validate.DatasetReport{
		{ID: "147", Title: "Serbia 1863"},
		{ID: "21", Title: "Albania 1918", Issues: []validate.Issue{
			{Kind: validate.MissingRequiredField, Field: "Land", Message: "required field is empty"},
			{Kind: validate.BadPID, Field: "PID", Message: `"x" does not match o:histdem.NNN`},
		}},
	}}

	var buf strings.Builder
	ValidationReport(&buf, report)
	out := buf.String()

	for _, want := range []string{
		"Dataset 147: Serbia 1863",
		"✓ no problems found",
		"Dataset 21: Albania 1918",
		"✗ (2 problems)",
		"[MISSING_REQUIRED_FIELD] Land: required field is empty",
		"Datasets checked: 2",
		"Datasets with problems: 1",
		"Problems found: 2",
		"fix the problems above",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestValidationReportClean(t *testing.T) {
	disableStyling(t)

	var buf strings.Builder
	ValidationReport(&buf, &validate.Report{Datasets: []validate.DatasetReport{
		{ID: "147", Title: "Serbia 1863"},
	}})

	if !strings.Contains(buf.String(), "all data is consistent and complete") {
		t.Errorf("clean report missing success line:\n%s", buf.String())
	}
}

func TestValidationReportTruncatesTitle(t *testing.T) {
	disableStyling(t)

	long := strings.Repeat("x", 80)
	var buf strings.Builder
	ValidationReport(&buf, &validate.Report{Datasets: []validate.DatasetReport{
		{ID: "147", Title: long},
	}})

	if strings.Contains(buf.String(), long) {
		t.Error("long title should be truncated")
	}
	if !strings.Contains(buf.String(), strings.Repeat("x", 60)) {
		t.Error("truncated title missing")
	}
}

func TestConversionSummary(t *testing.T) {
	disableStyling(t)

	result := &convert.Result{
		Written: []convert.Written{
			{Dataset: "147", Path: "output/147_tei.xml"},
			{Dataset: "21", Path: "output/21_tei.xml", Flags: []tei.Flag{
				{Code: "UNRESOLVED_PLACE", Message: `region "Atlantis" has no Wikidata id`},
			}},
		},
		Failures: []convert.Failure{
			{Dataset: "Datensatz 3", Err: errors.New("required field 'Datensatz ID' is empty")},
		},
	}

	var buf strings.Builder
	ConversionSummary(&buf, result)
	out := buf.String()

	for _, want := range []string{
		"✓ dataset 147 written to output/147_tei.xml",
		"⚠ UNRESOLVED_PLACE",
		"✗ dataset Datensatz 3 skipped",
		"ℹ 2 written, 1 failed",
		"ℹ flagged output needs a human pass",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestConversionSummaryNoHintWithoutFlags(t *testing.T) {
	disableStyling(t)

	result := &convert.Result{
		Written: []convert.Written{
			{Dataset: "147", Path: "output/147_tei.xml"},
		},
	}

	var buf strings.Builder
	ConversionSummary(&buf, result)
	out := buf.String()

	if !strings.Contains(out, "ℹ 1 written, 0 failed") {
		t.Errorf("summary missing total line:\n%s", out)
	}
	if strings.Contains(out, "human pass") {
		t.Errorf("hint printed without review flags:\n%s", out)
	}
}
