package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagboard/types"
)

const header = "AccountID,ResourceID,Service,Region,Department,Project,Environment,Owner,CostCenter,CreatedBy,MonthlyCostUSD,Tagged"

func TestParse_ValidRows(t *testing.T) {
	raw := header + "\n" +
		"111,i-1,EC2,us-east-1,Engineering,Atlas,Prod,alice,CC-1,terraform,120.50,Yes\n" +
		"111,i-2,S3,us-east-1,,,,,,console,8.99,No\n"

	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, dataset.Records, 2)
	assert.Equal(t, 0, dataset.Dropped)

	first := dataset.Records[0]
	assert.Equal(t, "i-1", first.ResourceID)
	assert.Equal(t, "Engineering", first.Department)
	assert.Equal(t, 120.50, first.MonthlyCostUSD)
	assert.True(t, first.CostKnown)
	assert.True(t, first.IsTagged())

	second := dataset.Records[1]
	assert.Equal(t, "", second.Department)
	assert.True(t, second.IsUntagged())
}

func TestParse_MismatchedFieldCountDropped(t *testing.T) {
	raw := header + "\n" +
		"111,i-1,EC2,us-east-1,Engineering,Atlas,Prod,alice,CC-1,terraform,120.50,Yes\n" +
		"garbage,line,with,too,few,fields\n" +
		"222,i-2,RDS,eu-west-1,Finance,Ledger,Dev,bob,CC-2,console,55,No\n"

	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)

	// Malformed line is dropped silently; neighbors survive intact.
	require.Len(t, dataset.Records, 2)
	assert.Equal(t, 1, dataset.Dropped)
	assert.Equal(t, "i-1", dataset.Records[0].ResourceID)
	assert.Equal(t, "i-2", dataset.Records[1].ResourceID)
}

func TestParse_NonNumericCostBecomesNull(t *testing.T) {
	raw := header + "\n" +
		"111,i-1,EC2,us-east-1,Engineering,Atlas,Prod,alice,CC-1,terraform,unknown,Yes\n" +
		"111,i-2,EC2,us-east-1,Engineering,Atlas,Prod,alice,CC-1,terraform,,Yes\n"

	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, dataset.Records, 2)

	for _, r := range dataset.Records {
		assert.False(t, r.CostKnown)
		assert.Equal(t, 0.0, r.Cost())
	}
}

func TestParse_QuotesStrippedAndFieldsTrimmed(t *testing.T) {
	raw := `"AccountID","ResourceID","Service","Region","Department","Project","Environment","Owner","CostCenter","CreatedBy","MonthlyCostUSD","Tagged"` + "\n" +
		`"111", "i-1" ,"EC2","us-east-1","Engineering","Atlas","Prod","alice","CC-1","terraform","42.5","Yes"` + "\r\n"

	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, dataset.Records, 1)
	assert.Equal(t, "i-1", dataset.Records[0].ResourceID)
	assert.Equal(t, 42.5, dataset.Records[0].MonthlyCostUSD)
}

func TestParse_MissingColumns(t *testing.T) {
	raw := "AccountID,ResourceID,Service\n111,i-1,EC2\n"

	_, err := Parse([]byte(raw))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "MonthlyCostUSD")
	assert.Contains(t, schemaErr.Missing, "Tagged")
	assert.NotContains(t, schemaErr.Missing, "Service")
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	raw := "Tagged,MonthlyCostUSD,CreatedBy,CostCenter,Owner,Environment,Project,Department,Region,Service,ResourceID,AccountID\n" +
		"No,10,console,CC-9,carol,Dev,Mesa,Ops,us-west-2,Lambda,fn-1,333\n"

	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, dataset.Records, 1)

	r := dataset.Records[0]
	assert.Equal(t, "333", r.AccountID)
	assert.Equal(t, "fn-1", r.ResourceID)
	assert.Equal(t, "Ops", r.Department)
	assert.Equal(t, 10.0, r.Cost())
}

func TestParse_ExtraColumnsIgnored(t *testing.T) {
	raw := header + ",Notes\n" +
		"111,i-1,EC2,us-east-1,Engineering,Atlas,Prod,alice,CC-1,terraform,5,Yes,some note\n"

	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, dataset.Records, 1)
	assert.Equal(t, "i-1", dataset.Records[0].ResourceID)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse([]byte(""))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Missing, len(types.Fields))
}

func TestDataset_Clone(t *testing.T) {
	raw := header + "\n111,i-1,EC2,us-east-1,Engineering,Atlas,Prod,alice,CC-1,terraform,5,Yes\n"
	dataset, err := Parse([]byte(raw))
	require.NoError(t, err)

	clone := dataset.Clone()
	clone.Records[0].Department = "Changed"
	assert.Equal(t, "Engineering", dataset.Records[0].Department)
}

func TestLoadError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &LoadError{Path: "x.csv", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "x.csv")
}
