package store

import (
	"fmt"
	"strings"
)

// LoadError reports that the source file could not be read.
// It halts the session; there is no partial-load mode.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports required columns absent after parsing.
// It halts before any aggregation runs.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Missing, ", "))
}
