// Package table reads the column-oriented metadata spreadsheet.
//
// The source CSV is a transposed matrix: each dataset occupies one column,
// each metadata field one row. The first column carries the field label, the
// second a human-readable description, and dataset columns start at the
// third. The dataset column headers live in the second row; field rows start
// at the fifth.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	headerRow       = 1 // 0-indexed row holding dataset column headers
	firstFieldRow   = 4 // 0-indexed first metadata row
	firstDatasetCol = 2 // 0-indexed first dataset column
)

// MalformedError indicates the input table as a whole is unusable.
// It is the only fatal condition the reader produces.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed input table: %s", e.Reason)
}

// Column is one dataset column of the spreadsheet.
type Column struct {
	// Header is the spreadsheet column header (e.g. "Datensatz 1").
	Header string

	// Fields maps field labels to trimmed cell values. Blank cells are absent.
	Fields map[string]string
}

// Get returns the trimmed value for a field label, or "" when absent.
func (c Column) Get(label string) string {
	return c.Fields[label]
}

// Table is the decoded spreadsheet: one Column per dataset.
type Table struct {
	Columns []Column
}

// ReadFile reads and decodes a CSV file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a table from CSV content.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows are ragged in practice

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &MalformedError{Reason: err.Error()}
	}

	if len(rows) <= headerRow {
		return nil, &MalformedError{Reason: "no header row"}
	}

	header := rows[headerRow]
	var columns []Column
	for i := firstDatasetCol; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if name == "" {
			continue
		}
		columns = append(columns, Column{
			Header: name,
			Fields: make(map[string]string),
		})
	}
	if len(columns) == 0 {
		return nil, &MalformedError{Reason: "no dataset columns"}
	}

	if len(rows) <= firstFieldRow {
		return nil, &MalformedError{Reason: "no metadata rows"}
	}

	for _, row := range rows[firstFieldRow:] {
		if len(row) < 2 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		for i := range columns {
			col := firstDatasetCol + i
			if col >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[col])
			if value != "" {
				columns[i].Fields[label] = value
			}
		}
	}

	return &Table{Columns: columns}, nil
}
