// Package record decodes one spreadsheet column into a typed dataset record.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhcraft/histdem/internal/table"
)

// Field labels as they appear in the first spreadsheet column.
const (
	FieldID         = "Datensatz ID"
	FieldTitle      = "Datensatz Titel"
	FieldCountry    = "Land"
	FieldCountryRef = "Land Wikidata"
	FieldRegion     = "Region"
	FieldRegionRef  = "Region Wikidata"
	FieldYear       = "Jahr"
	FieldFrom       = "Datum Von"
	FieldTo         = "Datum Bis"
	FieldPID        = "PID"
	FieldCodes      = "CSV Codes"
	FieldLabels     = "CSV Labels"
	FieldCitation   = "Zitierempfehlung"
	FieldKeywords   = "Schlagwörter"
	FieldLanguages  = "Sprachcodes"
	FieldHeadline   = "Überschrift"
	FieldBody       = "Beschreibung"
	FieldNotes      = "Anmerkungen"
	FieldPersons    = "Anzahl Personen"
	FieldHouseholds = "Anzahl Haushalte"
)

// Numbered field limits as laid out in the spreadsheet.
const (
	MaxSupplements = 10
	MaxImages      = 5
	MaxLiterature  = 4
)

// SupplementField returns the label of the i-th supplementary file row (1-based).
func SupplementField(i int) string { return fmt.Sprintf("Zusatzdatei %d", i) }

// ImageField returns the label of the i-th image row (1-based).
func ImageField(i int) string { return fmt.Sprintf("Bild %d", i) }

// LiteratureField returns the label of the i-th literature row (1-based).
func LiteratureField(i int) string { return fmt.Sprintf("Literatur %d", i) }

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// MissingRequiredField means a required field was empty or absent.
	MissingRequiredField ErrorKind = iota
	// BadDateFormat means a date field did not parse as an integer year.
	BadDateFormat
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredField:
		return "MISSING_REQUIRED_FIELD"
	case BadDateFormat:
		return "BAD_DATE_FORMAT"
	default:
		return "UNKNOWN"
	}
}

// DecodeError describes why a column could not be decoded.
type DecodeError struct {
	Kind   ErrorKind
	Field  string
	Value  string
	Column string // spreadsheet column header, for reporting
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case MissingRequiredField:
		return fmt.Sprintf("%s: required field '%s' is empty", e.Column, e.Field)
	case BadDateFormat:
		return fmt.Sprintf("%s: field '%s' is not a year: %q", e.Column, e.Field, e.Value)
	default:
		return fmt.Sprintf("%s: field '%s' invalid", e.Column, e.Field)
	}
}

// Record is the decoded metadata of one dataset.
//
// Year and From/To are alternative representations of the temporal extent;
// at most one form is populated. Zero means absent.
type Record struct {
	ID         string
	Title      string
	Country    string
	CountryRef string // explicit Wikidata QID from the sheet, optional
	Region     string
	RegionRef  string

	Year     int
	From, To int

	PID      string
	Citation string

	Codes       string   // raw "filename - title" entry
	Labels      string   // raw "filename - title" entry
	Supplements []string // raw entries, Zusatzdatei 1..10
	Images      []string // raw entries, Bild 1..5
	Literature  []string // bare references without files, Literatur 1..4

	Keywords  []string
	Languages []string

	Headline string
	Body     string
	Notes    string

	Persons    string
	Households string
}

// HasRange reports whether the temporal extent is a from/to range.
func (r *Record) HasRange() bool { return r.From != 0 && r.To != 0 }

// Decode turns a spreadsheet column into a Record.
//
// Only a missing id or title and unparseable date fields fail; every other
// absent field degrades to its zero value.
func Decode(col table.Column) (*Record, error) {
	rec := &Record{
		ID:         col.Get(FieldID),
		Title:      col.Get(FieldTitle),
		Country:    col.Get(FieldCountry),
		CountryRef: col.Get(FieldCountryRef),
		Region:     col.Get(FieldRegion),
		RegionRef:  col.Get(FieldRegionRef),
		PID:        col.Get(FieldPID),
		Citation:   col.Get(FieldCitation),
		Codes:      col.Get(FieldCodes),
		Labels:     col.Get(FieldLabels),
		Keywords:   splitList(col.Get(FieldKeywords)),
		Languages:  splitList(col.Get(FieldLanguages)),
		Headline:   col.Get(FieldHeadline),
		Body:       col.Get(FieldBody),
		Notes:      col.Get(FieldNotes),
		Persons:    col.Get(FieldPersons),
		Households: col.Get(FieldHouseholds),
	}

	if rec.ID == "" {
		return nil, &DecodeError{Kind: MissingRequiredField, Field: FieldID, Column: col.Header}
	}
	if rec.Title == "" {
		return nil, &DecodeError{Kind: MissingRequiredField, Field: FieldTitle, Column: col.Header}
	}

	year, err := dateField(col, FieldYear)
	if err != nil {
		return nil, err
	}
	from, err := dateField(col, FieldFrom)
	if err != nil {
		return nil, err
	}
	to, err := dateField(col, FieldTo)
	if err != nil {
		return nil, err
	}

	// A complete range wins over a single year; an incomplete range is
	// ignored here (the validator reports it) and the year stands alone.
	if from != 0 && to != 0 {
		rec.From, rec.To = from, to
	} else {
		rec.Year = year
	}

	for i := 1; i <= MaxSupplements; i++ {
		v := col.Get(SupplementField(i))
		if v == "" {
			break
		}
		rec.Supplements = append(rec.Supplements, v)
	}
	for i := 1; i <= MaxImages; i++ {
		v := col.Get(ImageField(i))
		if v == "" {
			break
		}
		rec.Images = append(rec.Images, v)
	}
	for i := 1; i <= MaxLiterature; i++ {
		v := col.Get(LiteratureField(i))
		if v == "" {
			break
		}
		rec.Literature = append(rec.Literature, v)
	}

	return rec, nil
}

func dateField(col table.Column, field string) (int, error) {
	raw := col.Get(field)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &DecodeError{Kind: BadDateFormat, Field: field, Value: raw, Column: col.Header}
	}
	return n, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
