package types

import "encoding/json"

// Field identifies one column of the resource dataset.
// A closed enum instead of string column names - lookups are
// statically checked, no stringly-typed access.
type Field int

const (
	FieldAccountID Field = iota
	FieldResourceID
	FieldService
	FieldRegion
	FieldDepartment
	FieldProject
	FieldEnvironment
	FieldOwner
	FieldCostCenter
	FieldCreatedBy
	FieldMonthlyCostUSD
	FieldTagged
)

// Fields lists every column in canonical header order.
var Fields = []Field{
	FieldAccountID,
	FieldResourceID,
	FieldService,
	FieldRegion,
	FieldDepartment,
	FieldProject,
	FieldEnvironment,
	FieldOwner,
	FieldCostCenter,
	FieldCreatedBy,
	FieldMonthlyCostUSD,
	FieldTagged,
}

// TagFields are the five governance tag fields that make up the
// tag completeness score.
var TagFields = []Field{
	FieldDepartment,
	FieldProject,
	FieldEnvironment,
	FieldOwner,
	FieldCostCenter,
}

// String returns the column header name for the field.
func (f Field) String() string {
	switch f {
	case FieldAccountID:
		return "AccountID"
	case FieldResourceID:
		return "ResourceID"
	case FieldService:
		return "Service"
	case FieldRegion:
		return "Region"
	case FieldDepartment:
		return "Department"
	case FieldProject:
		return "Project"
	case FieldEnvironment:
		return "Environment"
	case FieldOwner:
		return "Owner"
	case FieldCostCenter:
		return "CostCenter"
	case FieldCreatedBy:
		return "CreatedBy"
	case FieldMonthlyCostUSD:
		return "MonthlyCostUSD"
	case FieldTagged:
		return "Tagged"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the field as its column header name.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// FieldByName resolves a column header name to its Field.
// Used at API boundaries where field names arrive as text.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}
