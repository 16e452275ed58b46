// Package export writes record views as CSV, using the same
// comma/double-quote dialect as the input file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"tagboard/types"
)

// WriteRecords writes records to w with the canonical header row.
// Record order is exactly the order of the given view; null costs
// serialize as empty fields.
func WriteRecords(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(types.Fields))
	for i, f := range types.Fields {
		header[i] = f.String()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		row := make([]string, len(types.Fields))
		for j, f := range types.Fields {
			row[j] = r.Value(f)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to a CSV file at path.
func WriteFile(path string, records []types.Record) error {
	file, err := os.Create(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteRecords(file, records); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
