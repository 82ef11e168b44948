// Package validate checks raw input tables before conversion.
//
// All data problems are accumulated as issues and reported together; only a
// structurally broken table is fatal, and that is rejected by the table
// reader before a Validator ever sees it.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhcraft/histdem/internal/record"
	"github.com/dhcraft/histdem/internal/table"
)

// Kind classifies a validation issue.
type Kind int

const (
	MissingRequiredField Kind = iota
	BadFileEntry
	InconsistentFiles
	BadDateFormat
	BadDateRange
	BadPID
	BadLanguageCode
	MissingFile
)

func (k Kind) String() string {
	switch k {
	case MissingRequiredField:
		return "MISSING_REQUIRED_FIELD"
	case BadFileEntry:
		return "BAD_FILE_ENTRY"
	case InconsistentFiles:
		return "INCONSISTENT_FILES"
	case BadDateFormat:
		return "BAD_DATE_FORMAT"
	case BadDateRange:
		return "BAD_DATE_RANGE"
	case BadPID:
		return "BAD_PID"
	case BadLanguageCode:
		return "BAD_LANGUAGE_CODE"
	case MissingFile:
		return "MISSING_FILE"
	default:
		return "UNKNOWN"
	}
}

// Issue is one problem found in one dataset column. Issues are informational;
// none of them stops validation of the remaining fields or datasets.
type Issue struct {
	Kind    Kind
	Field   string // input field label, when the issue is tied to one
	Message string
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", i.Kind, i.Field, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Kind, i.Message)
}

// DatasetReport holds the issues of a single dataset column.
type DatasetReport struct {
	ID     string // dataset id, or the column header when the id cell is empty
	Title  string
	Issues []Issue
}

// Report is the outcome of validating a whole input table.
type Report struct {
	Datasets []DatasetReport
}

// Total counts issues across all datasets.
func (r *Report) Total() int {
	n := 0
	for _, d := range r.Datasets {
		n += len(d.Issues)
	}
	return n
}

// Clean reports whether no issues were found.
func (r *Report) Clean() bool { return r.Total() == 0 }

// requiredFields must be non-empty in every dataset column.
var requiredFields = []string{
	record.FieldID,
	record.FieldTitle,
	record.FieldCountry,
	record.FieldPID,
	record.FieldPersons,
	record.FieldHouseholds,
	record.FieldCitation,
	record.FieldKeywords,
	record.FieldLanguages,
	record.FieldHeadline,
	record.FieldBody,
}

var (
	pidRe      = regexp.MustCompile(`^o:histdem\.\d+$`)
	langCodeRe = regexp.MustCompile(`^[a-z]{2}$`)
)

// Validator checks dataset columns against the archive's input conventions.
type Validator struct {
	folders  map[string]string // dataset id -> data folder name
	basePath string            // root under which data folders live
}

// New returns a Validator. An empty basePath means the current directory.
func New(folders map[string]string, basePath string) *Validator {
	if basePath == "" {
		basePath = "."
	}
	return &Validator{folders: folders, basePath: basePath}
}

// ValidateTable validates every dataset column and returns the full report.
func (v *Validator) ValidateTable(tbl *table.Table) *Report {
	report := &Report{}
	for _, col := range tbl.Columns {
		report.Datasets = append(report.Datasets, v.validateColumn(col))
	}
	return report
}

func (v *Validator) validateColumn(col table.Column) DatasetReport {
	id := col.Get(record.FieldID)
	rep := DatasetReport{ID: id, Title: col.Get(record.FieldTitle)}
	if rep.ID == "" {
		rep.ID = col.Header
	}
	add := func(kind Kind, field, format string, args ...any) {
		rep.Issues = append(rep.Issues, Issue{
			Kind:    kind,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for _, field := range requiredFields {
		if col.Get(field) == "" {
			add(MissingRequiredField, field, "required field is empty")
		}
	}

	v.checkDates(col, add)
	v.checkFileEntries(col, add)
	v.checkCodesLabels(col, add)
	v.checkPID(col, id, add)
	v.checkLanguages(col, add)
	v.checkFilesExist(col, id, add)

	return rep
}

type addFunc func(kind Kind, field, format string, args ...any)

func (v *Validator) checkDates(col table.Column, add addFunc) {
	year := col.Get(record.FieldYear)
	from := col.Get(record.FieldFrom)
	to := col.Get(record.FieldTo)

	parse := func(field, value string) (int, bool) {
		if value == "" {
			return 0, false
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			add(BadDateFormat, field, "%q is not an integer year", value)
			return 0, false
		}
		return n, true
	}

	yearN, hasYear := parse(record.FieldYear, year)
	fromN, hasFrom := parse(record.FieldFrom, from)
	toN, hasTo := parse(record.FieldTo, to)

	if year == "" && (from == "" || to == "") {
		add(MissingRequiredField, record.FieldYear, "dataset needs a year or a complete date range")
	}
	if from != "" && to == "" {
		add(BadDateRange, record.FieldTo, "range incomplete: %q is set but %q is empty", record.FieldFrom, record.FieldTo)
	}
	if to != "" && from == "" {
		add(BadDateRange, record.FieldFrom, "range incomplete: %q is set but %q is empty", record.FieldTo, record.FieldFrom)
	}
	if hasYear && hasFrom && hasTo && (yearN < fromN || yearN > toN) {
		add(BadDateRange, record.FieldYear, "year %d lies outside the range %d-%d", yearN, fromN, toN)
	}
}

func (v *Validator) checkFileEntries(col table.Column, add addFunc) {
	check := func(field string) {
		raw := col.Get(field)
		if raw == "" {
			return
		}
		filename, title, hasSep := entryParts(raw)
		switch {
		case hasSep && filename == "":
			add(BadFileEntry, field, "empty filename before ' - '")
		case hasSep && title == "":
			add(BadFileEntry, field, "empty title after ' - '")
		case !hasSep:
			add(BadFileEntry, field, "missing title (expected 'filename - Title')")
		}
		if filename != "" && !strings.Contains(filename, ".") {
			add(BadFileEntry, field, "filename %q has no extension", filename)
		}
	}

	check(record.FieldCodes)
	check(record.FieldLabels)
	for i := 1; i <= record.MaxSupplements; i++ {
		check(record.SupplementField(i))
	}
	for i := 1; i <= record.MaxImages; i++ {
		check(record.ImageField(i))
	}
}

func (v *Validator) checkCodesLabels(col table.Column, add addFunc) {
	codes, _, _ := entryParts(col.Get(record.FieldCodes))
	labels, _, _ := entryParts(col.Get(record.FieldLabels))
	if codes == "" || labels == "" {
		return
	}

	if !strings.HasSuffix(codes, "_codes.csv") {
		add(InconsistentFiles, record.FieldCodes, "filename %q does not end in _codes.csv", codes)
	}
	if !strings.HasSuffix(labels, "_labels.csv") {
		add(InconsistentFiles, record.FieldLabels, "filename %q does not end in _labels.csv", labels)
	}

	codesBase := strings.TrimSuffix(codes, "_codes.csv")
	labelsBase := strings.TrimSuffix(strings.TrimSuffix(labels, "_codes.csv"), "_labels.csv")
	if codesBase != labelsBase {
		add(InconsistentFiles, record.FieldLabels,
			"base names differ: codes %q vs labels %q", codesBase, labelsBase)
	}
}

func (v *Validator) checkPID(col table.Column, id string, add addFunc) {
	pid := col.Get(record.FieldPID)
	if pid == "" {
		return
	}
	if !pidRe.MatchString(pid) {
		add(BadPID, record.FieldPID, "%q does not match o:histdem.NNN", pid)
		return
	}
	if id != "" && pid != "o:histdem."+id {
		add(BadPID, record.FieldPID, "%q does not match dataset id %q (expected o:histdem.%s)", pid, id, id)
	}
}

func (v *Validator) checkLanguages(col table.Column, add addFunc) {
	raw := col.Get(record.FieldLanguages)
	if raw == "" {
		return
	}
	for _, code := range strings.Split(raw, ",") {
		code = strings.TrimSpace(code)
		if !langCodeRe.MatchString(code) {
			add(BadLanguageCode, record.FieldLanguages, "%q is not a two-letter lowercase ISO 639-1 code", code)
		}
	}
}

func (v *Validator) checkFilesExist(col table.Column, id string, add addFunc) {
	var entries []struct{ field, raw string }
	collect := func(field string) {
		if raw := col.Get(field); raw != "" {
			entries = append(entries, struct{ field, raw string }{field, raw})
		}
	}
	collect(record.FieldCodes)
	collect(record.FieldLabels)
	for i := 1; i <= record.MaxSupplements; i++ {
		collect(record.SupplementField(i))
	}
	for i := 1; i <= record.MaxImages; i++ {
		collect(record.ImageField(i))
	}
	if len(entries) == 0 {
		return
	}

	folder, ok := v.folders[id]
	if !ok {
		add(MissingFile, "", "no folder mapping for dataset %q", id)
		return
	}
	dir := filepath.Join(v.basePath, folder)
	if _, err := os.Stat(dir); err != nil {
		add(MissingFile, "", "data folder %q does not exist", folder)
		return
	}

	for _, e := range entries {
		filename, _, _ := entryParts(e.raw)
		if filename == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
			add(MissingFile, e.field, "file not found: %s/%s", folder, filename)
		}
	}
}

// entryParts splits a "filename - Title" cell without judging its validity.
func entryParts(raw string) (filename, title string, hasSep bool) {
	raw = strings.TrimSpace(raw)
	if f, t, ok := strings.Cut(raw, " - "); ok {
		return strings.TrimSpace(f), strings.TrimSpace(t), true
	}
	return raw, "", false
}
