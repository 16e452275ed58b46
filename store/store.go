// Package store parses raw CSV text into the canonical record set.
package store

import (
	"strings"

	"tagboard/types"
)

// Dataset is the canonical, fully-parsed record set for a session.
// It is never mutated after parsing; views and remediation copies
// are derived from clones.
type Dataset struct {
	Records []types.Record
	// Dropped counts data lines rejected because their field count
	// did not match the header. Dropping is deliberate leniency
	// toward minor CSV corruption, not an error.
	Dropped int
}

// Clone returns an independent copy of the dataset.
// Sessions must not share record slices.
func (d *Dataset) Clone() *Dataset {
	records := make([]types.Record, len(d.Records))
	copy(records, d.Records)
	return &Dataset{Records: records, Dropped: d.Dropped}
}

// Parse turns raw delimited text into a Dataset.
//
// Policy: the first line is the header. Quote characters are
// stripped from each line before splitting on commas and fields are
// trimmed. A data line survives only if its field count exactly
// matches the header's. Cost values that fail numeric coercion
// become null, never an error. The only failure is a *SchemaError
// when required columns are absent.
func Parse(raw []byte) (*Dataset, error) {
	lines := strings.Split(string(raw), "\n")

	header := splitLine(lines[0])
	if err := checkSchema(header); err != nil {
		return nil, err
	}

	columns := make([]types.Field, len(header))
	known := make([]bool, len(header))
	for i, name := range header {
		columns[i], known[i] = types.FieldByName(name)
	}

	dataset := &Dataset{}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitLine(line)
		if len(values) != len(header) {
			dataset.Dropped++
			continue
		}

		var record types.Record
		for i, value := range values {
			if known[i] {
				record.SetValue(columns[i], value)
			}
		}
		dataset.Records = append(dataset.Records, record)
	}

	return dataset, nil
}

// splitLine strips quotes, splits on commas and trims each field.
func splitLine(line string) []string {
	clean := strings.ReplaceAll(strings.TrimRight(line, "\r\n"), `"`, "")
	fields := strings.Split(clean, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// checkSchema verifies every required column is present.
func checkSchema(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, f := range types.Fields {
		if !present[f.String()] {
			missing = append(missing, f.String())
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
