package types

import "testing"

func TestRecord_TagCompleteness(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   int
	}{
		{
			name: "fully tagged",
			record: Record{
				Department:  "Engineering",
				Project:     "Atlas",
				Environment: "Prod",
				Owner:       "alice",
				CostCenter:  "CC-100",
			},
			want: 5,
		},
		{
			name:   "no tags at all",
			record: Record{ResourceID: "i-123", Service: "EC2"},
			want:   0,
		},
		{
			name: "partially tagged",
			record: Record{
				Department: "Finance",
				Owner:      "bob",
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.TagCompleteness(); got != tt.want {
				t.Errorf("TagCompleteness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecord_MissingTagFields(t *testing.T) {
	r := Record{Department: "Engineering", Environment: "Prod"}
	missing := r.MissingTagFields()
	if len(missing) != 3 {
		t.Fatalf("MissingTagFields() returned %d fields, want 3", len(missing))
	}
	want := []Field{FieldProject, FieldOwner, FieldCostCenter}
	for i, f := range want {
		if missing[i] != f {
			t.Errorf("missing[%d] = %v, want %v", i, missing[i], f)
		}
	}
}

func TestRecord_TaggedFlag(t *testing.T) {
	tests := []struct {
		tagged       string
		wantTagged   bool
		wantUntagged bool
	}{
		{"Yes", true, false},
		{"No", false, true},
		{"", false, false},
		{"yes", false, false}, // other values preserved, match neither
	}

	for _, tt := range tests {
		r := Record{Tagged: tt.tagged}
		if got := r.IsTagged(); got != tt.wantTagged {
			t.Errorf("IsTagged() with %q = %v, want %v", tt.tagged, got, tt.wantTagged)
		}
		if got := r.IsUntagged(); got != tt.wantUntagged {
			t.Errorf("IsUntagged() with %q = %v, want %v", tt.tagged, got, tt.wantUntagged)
		}
	}
}

func TestRecord_Cost(t *testing.T) {
	known := Record{MonthlyCostUSD: 42.5, CostKnown: true}
	if known.Cost() != 42.5 {
		t.Errorf("Cost() = %v, want 42.5", known.Cost())
	}
	if known.CostString() != "42.5" {
		t.Errorf("CostString() = %q, want %q", known.CostString(), "42.5")
	}

	null := Record{MonthlyCostUSD: 99, CostKnown: false}
	if null.Cost() != 0 {
		t.Errorf("null Cost() = %v, want 0", null.Cost())
	}
	if null.CostString() != "" {
		t.Errorf("null CostString() = %q, want empty", null.CostString())
	}
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		in        string
		wantCost  float64
		wantKnown bool
	}{
		{"120.50", 120.50, true},
		{"0", 0, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"12,000", 0, false},
	}

	for _, tt := range tests {
		cost, known := ParseCost(tt.in)
		if cost != tt.wantCost || known != tt.wantKnown {
			t.Errorf("ParseCost(%q) = (%v, %v), want (%v, %v)",
				tt.in, cost, known, tt.wantCost, tt.wantKnown)
		}
	}
}

func TestRecord_SetValue_CostCoercion(t *testing.T) {
	var r Record
	r.SetValue(FieldMonthlyCostUSD, "88.25")
	if !r.CostKnown || r.MonthlyCostUSD != 88.25 {
		t.Fatalf("SetValue cost = (%v, %v), want (88.25, true)", r.MonthlyCostUSD, r.CostKnown)
	}
	r.SetValue(FieldMonthlyCostUSD, "not-a-number")
	if r.CostKnown {
		t.Error("unparseable cost should become null, not keep previous value")
	}
}

func TestFieldByName(t *testing.T) {
	f, ok := FieldByName("CostCenter")
	if !ok || f != FieldCostCenter {
		t.Errorf("FieldByName(CostCenter) = (%v, %v)", f, ok)
	}
	if _, ok := FieldByName("NoSuchColumn"); ok {
		t.Error("FieldByName should reject unknown columns")
	}
}

func TestRecord_ValueRoundTrip(t *testing.T) {
	r := Record{
		AccountID:  "111122223333",
		ResourceID: "i-0abc",
		Service:    "EC2",
		Region:     "us-east-1",
		CreatedBy:  "terraform",
		Tagged:     "No",
	}
	for _, f := range []Field{FieldAccountID, FieldResourceID, FieldService, FieldRegion, FieldCreatedBy, FieldTagged} {
		var out Record
		out.SetValue(f, r.Value(f))
		if out.Value(f) != r.Value(f) {
			t.Errorf("Value/SetValue round trip failed for %v", f)
		}
	}
}
