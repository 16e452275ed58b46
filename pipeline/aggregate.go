package pipeline

import (
	"sort"

	"tagboard/types"
)

// TaggingSummary counts records by tagging status.
type TaggingSummary struct {
	Total       int     `json:"total"`
	Tagged      int     `json:"tagged"`
	Untagged    int     `json:"untagged"`
	TaggedPct   float64 `json:"tagged_pct"`
	UntaggedPct float64 `json:"untagged_pct"`
}

// Summarize counts tagged vs untagged records. An empty view yields
// 0% everywhere, never a division error.
func Summarize(records []types.Record) TaggingSummary {
	s := TaggingSummary{Total: len(records)}
	for _, r := range records {
		switch {
		case r.IsTagged():
			s.Tagged++
		case r.IsUntagged():
			s.Untagged++
		}
	}
	s.TaggedPct = pct(float64(s.Tagged), float64(s.Total))
	s.UntaggedPct = pct(float64(s.Untagged), float64(s.Total))
	return s
}

// CostSummary partitions monthly cost by tagging status.
type CostSummary struct {
	Total       float64 `json:"total"`
	Tagged      float64 `json:"tagged"`
	Untagged    float64 `json:"untagged"`
	UntaggedPct float64 `json:"untagged_pct"`
}

// CostRollup sums monthly cost overall and by tagging status.
// Null costs contribute 0.
func CostRollup(records []types.Record) CostSummary {
	var s CostSummary
	for _, r := range records {
		cost := r.Cost()
		s.Total += cost
		switch {
		case r.IsTagged():
			s.Tagged += cost
		case r.IsUntagged():
			s.Untagged += cost
		}
	}
	s.UntaggedPct = pct(s.Untagged, s.Total)
	return s
}

// GroupCost is one group's summed cost.
type GroupCost struct {
	Key  string  `json:"key"`
	Cost float64 `json:"cost"`
}

// GroupCosts sums cost grouped by a categorical field, sorted
// descending by cost. Ties keep the first-appearance order of the
// group key. Records missing the field group under the empty key.
func GroupCosts(records []types.Record, field types.Field) []GroupCost {
	totals := make(map[string]float64)
	var order []string
	for _, r := range records {
		key := r.Value(field)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += r.Cost()
	}

	groups := make([]GroupCost, 0, len(order))
	for _, key := range order {
		groups = append(groups, GroupCost{Key: key, Cost: totals[key]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Cost > groups[j].Cost
	})
	return groups
}

// TopGroup returns the group with the highest summed cost.
// ok is false when the view has no records - a defined empty state.
func TopGroup(records []types.Record, field types.Field) (GroupCost, bool) {
	groups := GroupCosts(records, field)
	if len(groups) == 0 {
		return GroupCost{}, false
	}
	return groups[0], true
}

// Untagged returns the subset of records marked untagged, in order.
func Untagged(records []types.Record) []types.Record {
	var untagged []types.Record
	for _, r := range records {
		if r.IsUntagged() {
			untagged = append(untagged, r)
		}
	}
	return untagged
}

// UntaggedByCost returns the untagged subset sorted descending by
// cost. Null costs sort last; ties keep original order.
func UntaggedByCost(records []types.Record) []types.Record {
	untagged := Untagged(records)
	sorted := make([]types.Record, len(untagged))
	copy(sorted, untagged)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.CostKnown != b.CostKnown {
			return a.CostKnown
		}
		return a.Cost() > b.Cost()
	})
	return sorted
}

// EnvironmentBreakdown summarizes one environment's footprint.
type EnvironmentBreakdown struct {
	Environment string  `json:"environment"`
	Cost        float64 `json:"cost"`
	Records     int     `json:"records"`
	TaggedPct   float64 `json:"tagged_pct"`
}

// EnvironmentSummary reports cost, record count and tagging quality
// per environment, sorted by environment name.
func EnvironmentSummary(records []types.Record) []EnvironmentBreakdown {
	type acc struct {
		cost   float64
		total  int
		tagged int
	}
	byEnv := make(map[string]*acc)
	for _, r := range records {
		a := byEnv[r.Environment]
		if a == nil {
			a = &acc{}
			byEnv[r.Environment] = a
		}
		a.cost += r.Cost()
		a.total++
		if r.IsTagged() {
			a.tagged++
		}
	}

	envs := make([]string, 0, len(byEnv))
	for env := range byEnv {
		envs = append(envs, env)
	}
	sort.Strings(envs)

	summary := make([]EnvironmentBreakdown, 0, len(envs))
	for _, env := range envs {
		a := byEnv[env]
		summary = append(summary, EnvironmentBreakdown{
			Environment: env,
			Cost:        a.cost,
			Records:     a.total,
			TaggedPct:   pct(float64(a.tagged), float64(a.total)),
		})
	}
	return summary
}

// pct is the one shared percentage rule: 0 on a zero denominator.
func pct(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
