package pipeline

import (
	"sort"

	"tagboard/types"
)

// CompletenessStats aggregates the per-record tag completeness score.
type CompletenessStats struct {
	Mean         float64 `json:"mean"`
	FullyTagged  int     `json:"fully_tagged"`
	PoorlyTagged int     `json:"poorly_tagged"`
}

// Completeness computes the score statistics for a view.
// Mean is 0 on an empty view.
func Completeness(records []types.Record) CompletenessStats {
	var stats CompletenessStats
	sum := 0
	for _, r := range records {
		score := r.TagCompleteness()
		sum += score
		if score == 5 {
			stats.FullyTagged++
		}
		if score < 3 {
			stats.PoorlyTagged++
		}
	}
	if len(records) > 0 {
		stats.Mean = float64(sum) / float64(len(records))
	}
	return stats
}

// ScoredRecord pairs a record with its completeness score.
type ScoredRecord struct {
	Record types.Record `json:"record"`
	Score  int          `json:"score"`
}

// LowestCompleteness returns the n records with the lowest scores,
// ascending; ties keep original row order.
func LowestCompleteness(records []types.Record, n int) []ScoredRecord {
	scored := make([]ScoredRecord, 0, len(records))
	for _, r := range records {
		scored = append(scored, ScoredRecord{Record: r, Score: r.TagCompleteness()})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})
	if n < len(scored) {
		scored = scored[:n]
	}
	return scored
}

// FieldGap is a per-field missing-value count.
type FieldGap struct {
	Field   types.Field `json:"field"`
	Missing int         `json:"missing"`
	Pct     float64     `json:"pct"`
}

// MissingTagCensus counts missing values per governance tag field,
// sorted descending by count. Ties keep canonical field order.
func MissingTagCensus(records []types.Record) []FieldGap {
	return census(records, types.TagFields)
}

// MissingFieldCensus runs the same census across every column.
func MissingFieldCensus(records []types.Record) []FieldGap {
	return census(records, types.Fields)
}

func census(records []types.Record, fields []types.Field) []FieldGap {
	gaps := make([]FieldGap, 0, len(fields))
	for _, f := range fields {
		missing := 0
		for _, r := range records {
			if r.Value(f) == "" {
				missing++
			}
		}
		gaps = append(gaps, FieldGap{
			Field:   f,
			Missing: missing,
			Pct:     pct(float64(missing), float64(len(records))),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Missing > gaps[j].Missing
	})
	return gaps
}
