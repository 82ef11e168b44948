package record

import (
	"errors"
	"testing"

	"github.com/dhcraft/histdem/internal/table"
)

func column(fields map[string]string) table.Column {
	return table.Column{Header: "Datensatz 1", Fields: fields}
}

func TestDecode(t *testing.T) {
	col := column(map[string]string{
		FieldID:             "147",
		FieldTitle:          "Serbia 1863",
		FieldCountry:        "Serbia",
		FieldRegion:         "Kruševac",
		FieldYear:           "1863",
		FieldPID:            "o:histdem.147",
		FieldCitation:       "Joel M. Halpern and others. *Serbian Census of 1863*.",
		FieldKeywords:       "census, demography , households",
		FieldLanguages:      "sr, en",
		FieldHeadline:       "Serbia 1863",
		FieldBody:           "First paragraph.\n\nSecond paragraph.",
		FieldCodes:          "serbia_1863_codes.csv - Data with Codes",
		SupplementField(1):  "sample.pdf - Sample pages",
		SupplementField(2):  "study.pdf - Background study",
		ImageField(1):       "1863 sample3.jpg - Census scan",
		LiteratureField(1):  "Halpern, Joel M. A Serbian Village. 1958.",
	})

	rec, err := Decode(col)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if rec.ID != "147" || rec.Title != "Serbia 1863" {
		t.Errorf("id/title = %q/%q", rec.ID, rec.Title)
	}
	if rec.Year != 1863 || rec.HasRange() {
		t.Errorf("Year = %d, HasRange = %v; want single year 1863", rec.Year, rec.HasRange())
	}
	if len(rec.Keywords) != 3 || rec.Keywords[1] != "demography" {
		t.Errorf("Keywords = %v", rec.Keywords)
	}
	if len(rec.Languages) != 2 || rec.Languages[0] != "sr" {
		t.Errorf("Languages = %v", rec.Languages)
	}
	if len(rec.Supplements) != 2 {
		t.Errorf("Supplements = %v", rec.Supplements)
	}
	if len(rec.Images) != 1 || len(rec.Literature) != 1 {
		t.Errorf("Images = %v, Literature = %v", rec.Images, rec.Literature)
	}
}

func TestDecodeDateRange(t *testing.T) {
	rec, err := Decode(column(map[string]string{
		FieldID:    "153",
		FieldTitle: "Rhodope mountains around 1900",
		FieldFrom:  "1895",
		FieldTo:    "1905",
		FieldYear:  "1900",
	}))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !rec.HasRange() || rec.From != 1895 || rec.To != 1905 {
		t.Errorf("range = %d-%d, HasRange = %v", rec.From, rec.To, rec.HasRange())
	}
	// A complete range supersedes the single year.
	if rec.Year != 0 {
		t.Errorf("Year = %d, want 0 when a range is present", rec.Year)
	}
}

func TestDecodeIncompleteRange(t *testing.T) {
	rec, err := Decode(column(map[string]string{
		FieldID:    "153",
		FieldTitle: "t",
		FieldFrom:  "1895",
		FieldYear:  "1900",
	}))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if rec.HasRange() || rec.Year != 1900 {
		t.Errorf("Year = %d, HasRange = %v; want single year", rec.Year, rec.HasRange())
	}
}

func TestDecodeMissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		field  string
	}{
		{"no id", map[string]string{FieldTitle: "t"}, FieldID},
		{"no title", map[string]string{FieldID: "147"}, FieldTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(column(tt.fields))
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if derr.Kind != MissingRequiredField || derr.Field != tt.field {
				t.Errorf("got kind=%v field=%q, want MissingRequiredField %q", derr.Kind, derr.Field, tt.field)
			}
		})
	}
}

func TestDecodeBadDate(t *testing.T) {
	for _, field := range []string{FieldYear, FieldFrom, FieldTo} {
		t.Run(field, func(t *testing.T) {
			_, err := Decode(column(map[string]string{
				FieldID:    "147",
				FieldTitle: "t",
				field:      "ca. 1863",
			}))
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if derr.Kind != BadDateFormat || derr.Field != field {
				t.Errorf("got kind=%v field=%q, want BadDateFormat %q", derr.Kind, derr.Field, field)
			}
		})
	}
}

func TestDecodeNumberedGapEndsList(t *testing.T) {
	rec, err := Decode(column(map[string]string{
		FieldID:            "147",
		FieldTitle:         "t",
		SupplementField(1): "a.pdf - A",
		SupplementField(3): "c.pdf - C", // gap at 2
	}))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(rec.Supplements) != 1 {
		t.Errorf("Supplements = %v, want list ended at the gap", rec.Supplements)
	}
}

func TestDecodeOptionalAbsence(t *testing.T) {
	rec, err := Decode(column(map[string]string{FieldID: "1", FieldTitle: "t"}))
	if err != nil {
		t.Fatalf("Decode() error on minimal column: %v", err)
	}
	if rec.Year != 0 || rec.HasRange() || rec.Keywords != nil || rec.Supplements != nil {
		t.Errorf("optional fields should be zero: %+v", rec)
	}
}
