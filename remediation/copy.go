// Package remediation implements the editable working copy used in
// the tag remediation workflow.
package remediation

import (
	"fmt"

	"tagboard/types"
)

// Copy is a mutable, disposable working copy of the currently
// filtered untagged records - the only place in the system where
// mutation is user-driven. Edits never flow back into the canonical
// dataset; the copy is discarded unless exported.
type Copy struct {
	before  []types.Record
	records []types.Record
}

// NewCopy builds a working copy from the untagged subset of the
// current filtered view, preserving its order. The subset is also
// snapshotted as the before-state for later comparison.
func NewCopy(untagged []types.Record) *Copy {
	before := make([]types.Record, len(untagged))
	copy(before, untagged)
	records := make([]types.Record, len(untagged))
	copy(records, untagged)
	return &Copy{before: before, records: records}
}

// Records returns the current rows. The caller gets a copy; all
// mutation goes through SetField, AddRow and RemoveRow.
func (c *Copy) Records() []types.Record {
	out := make([]types.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the current row count.
func (c *Copy) Len() int {
	return len(c.records)
}

// SetField edits one cell.
func (c *Copy) SetField(row int, field types.Field, value string) error {
	if row < 0 || row >= len(c.records) {
		return fmt.Errorf("row %d out of range (have %d rows)", row, len(c.records))
	}
	c.records[row].SetValue(field, value)
	return nil
}

// AddRow appends a new row.
func (c *Copy) AddRow(r types.Record) {
	c.records = append(c.records, r)
}

// RemoveRow deletes a row.
func (c *Copy) RemoveRow(row int) error {
	if row < 0 || row >= len(c.records) {
		return fmt.Errorf("row %d out of range (have %d rows)", row, len(c.records))
	}
	c.records = append(c.records[:row], c.records[row+1:]...)
	return nil
}

// Comparison reports remediation progress against the before-state.
type Comparison struct {
	RowsBefore        int `json:"rows_before"`
	RowsAfter         int `json:"rows_after"`
	MissingTagsBefore int `json:"missing_tags_before"`
	MissingTagsAfter  int `json:"missing_tags_after"`
	RowsMissingBefore int `json:"rows_missing_before"`
	RowsMissingAfter  int `json:"rows_missing_after"`
	// Improvement is rows-with-missing-tags before minus after.
	// Deleting complete rows or blanking fields can drive it
	// negative; the value is the literal arithmetic, not clamped.
	Improvement int `json:"improvement"`
}

// Compare computes the before/after comparison.
func (c *Copy) Compare() Comparison {
	missingBefore, rowsMissingBefore := countMissing(c.before)
	missingAfter, rowsMissingAfter := countMissing(c.records)

	return Comparison{
		RowsBefore:        len(c.before),
		RowsAfter:         len(c.records),
		MissingTagsBefore: missingBefore,
		MissingTagsAfter:  missingAfter,
		RowsMissingBefore: rowsMissingBefore,
		RowsMissingAfter:  rowsMissingAfter,
		Improvement:       rowsMissingBefore - rowsMissingAfter,
	}
}

func countMissing(records []types.Record) (fields, rows int) {
	for _, r := range records {
		missing := len(r.MissingTagFields())
		fields += missing
		if missing > 0 {
			rows++
		}
	}
	return fields, rows
}
