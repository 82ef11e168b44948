package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/dhcraft/histdem/internal/table"
	"github.com/dhcraft/histdem/internal/tei"
)

func TestTableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "malformed table",
			err:      &table.MalformedError{Reason: "no header row"},
			wantCode: ErrMalformedInputTable,
		},
		{
			name:     "missing file",
			err:      fmt.Errorf("open table: %w", fs.ErrNotExist),
			wantCode: ErrFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tableError(tt.err)
			if !strings.HasPrefix(got.Error(), tt.wantCode+": ") {
				t.Errorf("tableError() = %q, want %q prefix", got, tt.wantCode)
			}
			if !errors.Is(got, tt.err) && !errors.Is(got, fs.ErrNotExist) {
				t.Error("cause not wrapped")
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		err := errors.New("permission denied")
		if got := tableError(err); got != err {
			t.Errorf("tableError() = %v, want the original error", got)
		}
	})
}

func TestTemplateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "incomplete template",
			err:      &tei.IncompleteError{Path: "t.yaml", Missing: []string{"publisher.name"}},
			wantCode: ErrTemplateIncomplete,
		},
		{
			name:     "missing file",
			err:      fmt.Errorf("read template: %w", fs.ErrNotExist),
			wantCode: ErrFileNotFound,
		},
		{
			name:     "unparseable template",
			err:      errors.New("parse template t.yaml: bad indentation"),
			wantCode: ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := templateError(tt.err)
			if !strings.HasPrefix(got.Error(), tt.wantCode+": ") {
				t.Errorf("templateError() = %q, want %q prefix", got, tt.wantCode)
			}
		})
	}
}
