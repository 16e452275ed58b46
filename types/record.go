// Package types defines the resource record model for tagboard.
package types

import "strconv"

// Record represents one cloud resource row.
// All text fields are plain strings where the empty string means
// the value is missing. MonthlyCostUSD carries an explicit null
// marker because a missing cost and a zero cost are different things.
type Record struct {
	AccountID      string  `json:"account_id"`
	ResourceID     string  `json:"resource_id"`
	Service        string  `json:"service"`
	Region         string  `json:"region"`
	Department     string  `json:"department"`
	Project        string  `json:"project"`
	Environment    string  `json:"environment"`
	Owner          string  `json:"owner"`
	CostCenter     string  `json:"cost_center"`
	CreatedBy      string  `json:"created_by"`
	MonthlyCostUSD float64 `json:"monthly_cost_usd"`
	CostKnown      bool    `json:"cost_known"`
	Tagged         string  `json:"tagged"`
}

// IsTagged reports whether the record is marked tagged.
// Values other than "Yes"/"No" are preserved and match neither.
func (r Record) IsTagged() bool {
	return r.Tagged == "Yes"
}

// IsUntagged reports whether the record is marked untagged.
func (r Record) IsUntagged() bool {
	return r.Tagged == "No"
}

// Cost returns the record's monthly cost, 0 when the cost is null.
// Null costs contribute 0 to every sum.
func (r Record) Cost() float64 {
	if !r.CostKnown {
		return 0
	}
	return r.MonthlyCostUSD
}

// CostString returns the cost in CSV form, empty when null.
func (r Record) CostString() string {
	if !r.CostKnown {
		return ""
	}
	return strconv.FormatFloat(r.MonthlyCostUSD, 'f', -1, 64)
}

// Value returns the text form of any column.
func (r Record) Value(f Field) string {
	switch f {
	case FieldAccountID:
		return r.AccountID
	case FieldResourceID:
		return r.ResourceID
	case FieldService:
		return r.Service
	case FieldRegion:
		return r.Region
	case FieldDepartment:
		return r.Department
	case FieldProject:
		return r.Project
	case FieldEnvironment:
		return r.Environment
	case FieldOwner:
		return r.Owner
	case FieldCostCenter:
		return r.CostCenter
	case FieldCreatedBy:
		return r.CreatedBy
	case FieldMonthlyCostUSD:
		return r.CostString()
	case FieldTagged:
		return r.Tagged
	default:
		return ""
	}
}

// SetValue sets a column from its text form.
// Setting the cost column applies the same lenient coercion as the
// loader: unparseable text becomes a null cost, never an error.
func (r *Record) SetValue(f Field, value string) {
	switch f {
	case FieldAccountID:
		r.AccountID = value
	case FieldResourceID:
		r.ResourceID = value
	case FieldService:
		r.Service = value
	case FieldRegion:
		r.Region = value
	case FieldDepartment:
		r.Department = value
	case FieldProject:
		r.Project = value
	case FieldEnvironment:
		r.Environment = value
	case FieldOwner:
		r.Owner = value
	case FieldCostCenter:
		r.CostCenter = value
	case FieldCreatedBy:
		r.CreatedBy = value
	case FieldMonthlyCostUSD:
		r.MonthlyCostUSD, r.CostKnown = ParseCost(value)
	case FieldTagged:
		r.Tagged = value
	}
}

// ParseCost coerces cost text to a float. Empty or unparseable
// values become the null marker rather than an error.
func ParseCost(value string) (cost float64, known bool) {
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// TagCompleteness returns how many of the five governance tag
// fields are present, 0-5.
func (r Record) TagCompleteness() int {
	score := 0
	for _, f := range TagFields {
		if r.Value(f) != "" {
			score++
		}
	}
	return score
}

// MissingTagFields returns the governance tag fields with no value.
func (r Record) MissingTagFields() []Field {
	var missing []Field
	for _, f := range TagFields {
		if r.Value(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
