package pipeline

import (
	"sort"

	"tagboard/types"
)

// CrossCell is the summed cost for one pair of group values.
type CrossCell struct {
	Row  string  `json:"row"`
	Col  string  `json:"col"`
	Cost float64 `json:"cost"`
}

// CrossTabCosts sums cost grouped jointly by two categorical fields,
// used for environment x tagged-status and department x tagged-status
// breakdowns. Cells come back sorted ascending by (row, col) so
// callers can reshape deterministically.
func CrossTabCosts(records []types.Record, rowField, colField types.Field) []CrossCell {
	type pair struct{ row, col string }
	totals := make(map[pair]float64)
	for _, r := range records {
		totals[pair{r.Value(rowField), r.Value(colField)}] += r.Cost()
	}

	cells := make([]CrossCell, 0, len(totals))
	for p, cost := range totals {
		cells = append(cells, CrossCell{Row: p.row, Col: p.col, Cost: cost})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}
