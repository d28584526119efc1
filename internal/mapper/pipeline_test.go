package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
)

const sampleOrderCSV = `###ORD-HEADER
CUST-ORDER,CUST-ADDR-CODE,CUST-ADDR-NAME,DELIVERY-DUE-DATE,TOTAL-ORDER-UNITS,TOTAL-ORDER-VALUE
CUST-001,CA0,Waitrose Head Office,2026-01-15,15,405.00
###ORD-HEADER-END
###ORD-LINES
LINE-NO,LINE-CODE,LINE-DESC,LINE-QUANT,LINE-PRICE,LINE-TOTAL-AMOUNT
1,PROD001,Widget,10,25.50,255.00
2,PROD002,Gadget,5,30.00,150.00
###ORD-LINES-END
`

func pipelineFixture(t *testing.T, csvContent string) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	templatePath := filepath.Join(dir, "baseEDI.XML")
	require.NoError(t, os.WriteFile(templatePath, []byte(baseTemplate), 0644))

	csvPath := filepath.Join(dir, "order.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvContent), 0644))

	cfg := config.Default()
	cfg.TemplatePath = templatePath
	cfg.OutputDir = filepath.Join(dir, "outputs")

	return cfg, csvPath
}

func TestPipelineRun(t *testing.T) {
	cfg, csvPath := pipelineFixture(t, sampleOrderCSV)

	result := NewPipeline(csvPath, cfg, nil).Run()
	require.NoError(t, result.Error)
	require.True(t, result.Success)

	assert.Equal(t, "CUST-001", result.CustOrder)
	assert.Equal(t, 2, result.LineItems)
	assert.Equal(t, "WAITROSE_CUST-001.XML", filepath.Base(result.OutputFile))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(result.OutputFile))

	root := doc.Root().SelectElement("Document")
	require.NotNil(t, root)
	assert.Equal(t, "CUST-001", root.FindElement("OrderHeader/CustOrder").Text())
	assert.Len(t, root.SelectElements("OrderLine"), 2)
	assert.Equal(t, "2", root.FindElement("DocTrailer/TotalLines").Text())
}

func TestPipelineRunOutputNameIsVerbatim(t *testing.T) {
	// The CUST-ORDER value is substituted into the file name with no
	// sanitization, spaces and slashes included.
	csvContent := `###ORD-HEADER
CUST-ORDER
ORDER 2026.01
###ORD-HEADER-END
###ORD-LINES
LINE-NO,LINE-CODE
1,PROD001
###ORD-LINES-END
`
	cfg, csvPath := pipelineFixture(t, csvContent)

	result := NewPipeline(csvPath, cfg, nil).Run()
	require.NoError(t, result.Error)
	assert.Equal(t, "WAITROSE_ORDER 2026.01.XML", filepath.Base(result.OutputFile))
}

func TestPipelineRunMalformedInput(t *testing.T) {
	cfg, csvPath := pipelineFixture(t, "not,an,order\nfile,at,all\n")

	result := NewPipeline(csvPath, cfg, nil).Run()
	require.False(t, result.Success)

	var malformedErr *csvparser.MalformedInputError
	require.ErrorAs(t, result.Error, &malformedErr)
	assert.Empty(t, result.OutputFile)

	// No partial output on failure.
	entries, err := os.ReadDir(cfg.OutputDir)
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestPipelineRunMissingTemplate(t *testing.T) {
	cfg, csvPath := pipelineFixture(t, sampleOrderCSV)
	cfg.TemplatePath = filepath.Join(t.TempDir(), "nope.XML")

	result := NewPipeline(csvPath, cfg, nil).Run()
	require.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "base template")
}
