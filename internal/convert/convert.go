// Package convert runs the batch conversion of an input table into documents.
//
// A decode failure aborts only that dataset; the batch continues and the
// failure is reported in the result. Only a malformed table or an incomplete
// boilerplate template aborts the whole run.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/dhcraft/histdem/internal/atomicfile"
	"github.com/dhcraft/histdem/internal/record"
	"github.com/dhcraft/histdem/internal/table"
	"github.com/dhcraft/histdem/internal/tei"
)

// indentSpaces matches the whitespace convention of the archive's existing
// hand-maintained documents.
const indentSpaces = 3

// Written describes one successfully emitted document.
type Written struct {
	Dataset string
	Path    string
	Flags   []tei.Flag // review flags, informational
}

// Failure describes one dataset that produced no output.
type Failure struct {
	Dataset string
	Err     error
}

// Result is the outcome of a batch run. Written and Failures together cover
// every dataset column of the input.
type Result struct {
	Written  []Written
	Failures []Failure
}

// Converter turns decoded tables into files on disk.
type Converter struct {
	builder *tei.Builder
	outDir  string
}

// New returns a Converter writing into outDir.
func New(builder *tei.Builder, outDir string) *Converter {
	return &Converter{builder: builder, outDir: outDir}
}

// Run converts every dataset column of tbl and returns the batch result.
func (c *Converter) Run(tbl *table.Table) (*Result, error) {
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	result := &Result{}
	for _, col := range tbl.Columns {
		dataset := col.Get(record.FieldID)
		if dataset == "" {
			dataset = col.Header
		}

		rec, err := record.Decode(col)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Dataset: dataset, Err: err})
			continue
		}

		doc, flags := c.builder.Build(rec)
		path := filepath.Join(c.outDir, rec.ID+"_tei.xml")
		if err := c.write(doc, path); err != nil {
			result.Failures = append(result.Failures, Failure{Dataset: dataset, Err: err})
			continue
		}

		result.Written = append(result.Written, Written{
			Dataset: dataset,
			Path:    path,
			Flags:   flags,
		})
	}

	return result, nil
}

func (c *Converter) write(doc *etree.Document, path string) error {
	settings := etree.NewIndentSettings()
	settings.Spaces = indentSpaces
	settings.PreserveLeafWhitespace = true
	doc.IndentWithSettings(settings)
	doc.WriteSettings.UseCRLF = false

	if err := atomicfile.WriteTo(path, doc, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
