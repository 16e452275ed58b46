// Package pipeline implements the pure filter-and-aggregate
// operations that every report and chart consumes. Nothing here
// mutates its input or holds hidden state.
package pipeline

import (
	"sort"

	"tagboard/types"
)

// AllValues is the sentinel selection value meaning "no restriction
// for this field". Its presence overrides any other chosen values.
const AllValues = "All"

// Selections holds the user's filter choices per field.
// An explicit immutable value handed into Apply - the pipeline never
// reads ambient UI state.
type Selections struct {
	Departments  []string `json:"departments"`
	Services     []string `json:"services"`
	Regions      []string `json:"regions"`
	Environments []string `json:"environments"`
}

// Apply returns the records matching the selections, preserving the
// input order. Matching is conjunctive across fields and disjunctive
// within a field; unspecified fields are unrestricted.
func Apply(records []types.Record, sel Selections) []types.Record {
	filtered := make([]types.Record, 0, len(records))
	for _, r := range records {
		if matches(r.Department, sel.Departments) &&
			matches(r.Service, sel.Services) &&
			matches(r.Region, sel.Regions) &&
			matches(r.Environment, sel.Environments) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matches(value string, chosen []string) bool {
	if unrestricted(chosen) {
		return true
	}
	for _, v := range chosen {
		if v == value {
			return true
		}
	}
	return false
}

// unrestricted reports whether a selection set places no restriction:
// empty, or containing the AllValues sentinel.
func unrestricted(chosen []string) bool {
	if len(chosen) == 0 {
		return true
	}
	for _, v := range chosen {
		if v == AllValues {
			return true
		}
	}
	return false
}

// FieldOptions returns the distinct non-empty values of a field,
// sorted, for building filter controls.
func FieldOptions(records []types.Record, field types.Field) []string {
	seen := make(map[string]bool)
	var options []string
	for _, r := range records {
		v := r.Value(field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, v)
	}
	sort.Strings(options)
	return options
}
