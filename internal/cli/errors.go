package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dhcraft/histdem/internal/table"
	"github.com/dhcraft/histdem/internal/tei"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Configuration errors
	ErrConfigInvalid      = "CONFIG_INVALID"
	ErrTemplateIncomplete = "TEMPLATE_INCOMPLETE"

	// Input errors
	ErrMalformedInputTable = "MALFORMED_INPUT_TABLE"
	ErrFileNotFound        = "FILE_NOT_FOUND"

	// Outcome errors
	ErrValidationFailed  = "VALIDATION_FAILED"
	ErrPartialConversion = "PARTIAL_CONVERSION"
	ErrFileWriteError    = "FILE_WRITE_ERROR"
)

// tableError attaches the stable code for an input table read failure.
func tableError(err error) error {
	var malformed *table.MalformedError
	switch {
	case errors.As(err, &malformed):
		return fmt.Errorf("%s: %w", ErrMalformedInputTable, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", ErrFileNotFound, err)
	default:
		return err
	}
}

// templateError attaches the stable code for a boilerplate template failure.
func templateError(err error) error {
	var incomplete *tei.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		return fmt.Errorf("%s: %w", ErrTemplateIncomplete, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", ErrFileNotFound, err)
	default:
		return fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
}
