package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRows() [][]string {
	return [][]string{
		{"###ORD-HEADER"},
		{"CUST-ORDER", "CUST-ADDR-NAME"},
		{"CUST-001", "Waitrose Head Office"},
		{"###ORD-HEADER-END"},
		{"###ORD-LINES"},
		{"LINE-NO", "LINE-CODE"},
		{"1", "PROD001"},
		{"###ORD-LINES-END"},
	}
}

func TestValidateFormatValidFile(t *testing.T) {
	result := ValidateFormat(validRows())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Findings)
}

func TestValidateFormatEmptyFile(t *testing.T) {
	result := ValidateFormat(nil)
	require.False(t, result.Valid)
	assert.Contains(t, result.Findings, "file is empty")
}

func TestValidateFormatMissingMarkers(t *testing.T) {
	result := ValidateFormat([][]string{
		{"CUST-ORDER"},
		{"CUST-001"},
	})
	require.False(t, result.Valid)

	// All four missing markers reported together, not just the first.
	assert.Len(t, result.Findings, 4)
	assert.Contains(t, result.Findings, "missing required marker ###ORD-HEADER")
	assert.Contains(t, result.Findings, "missing required marker ###ORD-LINES-END")
}

func TestValidateFormatDuplicateMarker(t *testing.T) {
	rows := append(validRows(), []string{"###ORD-LINES-END"})
	result := ValidateFormat(rows)

	require.False(t, result.Valid)
	assert.Contains(t, result.Findings, "marker ###ORD-LINES-END appears 2 times, expected once")
}

func TestValidateFormatMisorderedMarkers(t *testing.T) {
	result := ValidateFormat([][]string{
		{"###ORD-HEADER-END"},
		{"###ORD-HEADER"},
		{"###ORD-LINES"},
		{"LINE-NO"},
		{"###ORD-LINES-END"},
	})

	require.False(t, result.Valid)
	assert.Contains(t, result.Findings, "header end marker must come after its start marker")
}

func TestValidateFormatHeaderProblems(t *testing.T) {
	t.Run("no value row", func(t *testing.T) {
		result := ValidateFormat([][]string{
			{"###ORD-HEADER"},
			{"CUST-ORDER"},
			{"###ORD-HEADER-END"},
			{"###ORD-LINES"},
			{"LINE-NO"},
			{"###ORD-LINES-END"},
		})
		require.False(t, result.Valid)
		assert.Contains(t, result.Findings, "header section has no value row")
	})

	t.Run("empty header section", func(t *testing.T) {
		result := ValidateFormat([][]string{
			{"###ORD-HEADER"},
			{"###ORD-HEADER-END"},
			{"###ORD-LINES"},
			{"LINE-NO"},
			{"###ORD-LINES-END"},
		})
		require.False(t, result.Valid)
		assert.Contains(t, result.Findings, "header section is empty")
	})
}

func TestValidateFormatCustOrder(t *testing.T) {
	t.Run("missing field", func(t *testing.T) {
		rows := validRows()
		rows[1] = []string{"CUST-ADDR-NAME"}
		rows[2] = []string{"Waitrose Head Office"}

		result := ValidateFormat(rows)
		require.False(t, result.Valid)
		assert.Contains(t, result.Findings, "CUST-ORDER field is required in the header section")
	})

	t.Run("empty value", func(t *testing.T) {
		rows := validRows()
		rows[2] = []string{"", "Waitrose Head Office"}

		result := ValidateFormat(rows)
		require.False(t, result.Valid)
		assert.Contains(t, result.Findings, "CUST-ORDER field is required but empty")
	})
}

func TestValidateFormatEmptyLinesSection(t *testing.T) {
	result := ValidateFormat([][]string{
		{"###ORD-HEADER"},
		{"CUST-ORDER"},
		{"CUST-001"},
		{"###ORD-HEADER-END"},
		{"###ORD-LINES"},
		{"###ORD-LINES-END"},
	})

	require.False(t, result.Valid)
	assert.Contains(t, result.Findings, "lines section is empty")
}

func TestValidateFormatCollectsMultipleFindings(t *testing.T) {
	result := ValidateFormat([][]string{
		{"###ORD-HEADER"},
		{"CUST-ADDR-NAME"},
		{"Waitrose Head Office"},
		{"###ORD-HEADER-END"},
		{"###ORD-LINES"},
		{"###ORD-LINES-END"},
	})

	require.False(t, result.Valid)
	assert.GreaterOrEqual(t, len(result.Findings), 2)
}
