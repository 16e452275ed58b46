package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagboard/types"
)

func fullyTagged(id string) types.Record {
	return types.Record{
		ResourceID:  id,
		Department:  "Engineering",
		Project:     "Atlas",
		Environment: "Prod",
		Owner:       "alice",
		CostCenter:  "CC-1",
	}
}

func TestCompleteness(t *testing.T) {
	records := []types.Record{
		fullyTagged("i-1"),                                  // score 5
		{ResourceID: "i-2", Department: "Ops"},              // score 1
		{ResourceID: "i-3", Owner: "bob", Project: "Mesa"},  // score 2
		{ResourceID: "i-4", Department: "Fin", Owner: "cy", Project: "Led"}, // score 3
	}

	stats := Completeness(records)
	assert.InDelta(t, 2.75, stats.Mean, 1e-9)
	assert.Equal(t, 1, stats.FullyTagged)
	assert.Equal(t, 2, stats.PoorlyTagged)
}

func TestCompleteness_ScoreBounds(t *testing.T) {
	for _, r := range []types.Record{{}, fullyTagged("i-1"), {Owner: "x"}} {
		score := r.TagCompleteness()
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 5)
	}
	assert.Equal(t, 5, fullyTagged("i-1").TagCompleteness())
}

func TestCompleteness_EmptyViewMeanIsZero(t *testing.T) {
	stats := Completeness(nil)
	assert.Equal(t, 0.0, stats.Mean)
	assert.Equal(t, 0, stats.FullyTagged)
	assert.Equal(t, 0, stats.PoorlyTagged)
}

func TestLowestCompleteness_StableAscending(t *testing.T) {
	records := []types.Record{
		fullyTagged("best"),
		{ResourceID: "bare-1"},
		{ResourceID: "partial", Department: "Ops", Owner: "bob"},
		{ResourceID: "bare-2"},
	}

	lowest := LowestCompleteness(records, 3)
	require.Len(t, lowest, 3)
	// Ties between the two score-0 records keep original row order.
	assert.Equal(t, "bare-1", lowest[0].Record.ResourceID)
	assert.Equal(t, "bare-2", lowest[1].Record.ResourceID)
	assert.Equal(t, "partial", lowest[2].Record.ResourceID)
	assert.Equal(t, 0, lowest[0].Score)
	assert.Equal(t, 2, lowest[2].Score)
}

func TestLowestCompleteness_TruncatesToN(t *testing.T) {
	records := []types.Record{fullyTagged("a"), fullyTagged("b"), fullyTagged("c")}
	assert.Len(t, LowestCompleteness(records, 2), 2)
	assert.Len(t, LowestCompleteness(records, 10), 3)
}

func TestMissingTagCensus(t *testing.T) {
	records := []types.Record{
		{Department: "Eng", Owner: "alice"},
		{Department: "Eng"},
		{Owner: "bob", Project: "Atlas"},
		{},
	}

	gaps := MissingTagCensus(records)
	require.Len(t, gaps, 5)

	// CostCenter and Environment are missing everywhere; descending
	// count with canonical field order breaking the tie.
	assert.Equal(t, types.FieldEnvironment, gaps[0].Field)
	assert.Equal(t, 4, gaps[0].Missing)
	assert.InDelta(t, 100.0, gaps[0].Pct, 1e-9)
	assert.Equal(t, types.FieldCostCenter, gaps[1].Field)

	last := gaps[len(gaps)-1]
	assert.Equal(t, types.FieldDepartment, last.Field)
	assert.Equal(t, 2, last.Missing)
}

func TestMissingTagCensus_EmptyView(t *testing.T) {
	gaps := MissingTagCensus(nil)
	require.Len(t, gaps, 5)
	for _, g := range gaps {
		assert.Equal(t, 0, g.Missing)
		assert.Equal(t, 0.0, g.Pct)
	}
}

func TestMissingFieldCensus_CoversAllColumnsAndNullCost(t *testing.T) {
	records := []types.Record{
		{ResourceID: "i-1", CostKnown: false},
		{ResourceID: "i-2", MonthlyCostUSD: 3, CostKnown: true},
	}

	gaps := MissingFieldCensus(records)
	require.Len(t, gaps, len(types.Fields))

	var costGap FieldGap
	for _, g := range gaps {
		if g.Field == types.FieldMonthlyCostUSD {
			costGap = g
		}
	}
	assert.Equal(t, 1, costGap.Missing)
	assert.InDelta(t, 50.0, costGap.Pct, 1e-9)
}

func TestCrossTabCosts(t *testing.T) {
	records := []types.Record{
		{Environment: "Prod", Tagged: "Yes", MonthlyCostUSD: 100, CostKnown: true},
		{Environment: "Prod", Tagged: "No", MonthlyCostUSD: 40, CostKnown: true},
		{Environment: "Dev", Tagged: "No", MonthlyCostUSD: 10, CostKnown: true},
		{Environment: "Prod", Tagged: "Yes", MonthlyCostUSD: 25, CostKnown: true},
	}

	cells := CrossTabCosts(records, types.FieldEnvironment, types.FieldTagged)
	require.Len(t, cells, 3)

	assert.Equal(t, CrossCell{Row: "Dev", Col: "No", Cost: 10}, cells[0])
	assert.Equal(t, CrossCell{Row: "Prod", Col: "No", Cost: 40}, cells[1])
	assert.Equal(t, "Prod", cells[2].Row)
	assert.Equal(t, "Yes", cells[2].Col)
	assert.InDelta(t, 125.0, cells[2].Cost, 1e-9)
}

func TestCrossTabCosts_MassConservation(t *testing.T) {
	records := sampleRecords()
	cells := CrossTabCosts(records, types.FieldDepartment, types.FieldTagged)

	var total float64
	for _, c := range cells {
		total += c.Cost
	}
	assert.InDelta(t, CostRollup(records).Total, total, 1e-9)
}
