package xmltree

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRoot(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

func TestApplySetsExistingElement(t *testing.T) {
	root := parseRoot(t, `<Document><DocHeader><CustAddr><Code>XX</Code></CustAddr></DocHeader></Document>`)

	err := Apply(root, "DocHeader/CustAddr/Code", "CA0", false)
	require.NoError(t, err)

	code := root.SelectElement("DocHeader").SelectElement("CustAddr").SelectElement("Code")
	assert.Equal(t, "CA0", code.Text())
}

func TestApplyEmptyValueIsNoOp(t *testing.T) {
	root := parseRoot(t, `<Document><DocHeader><CustAddr><Code>XX</Code></CustAddr></DocHeader></Document>`)

	// Existing target keeps its template value.
	require.NoError(t, Apply(root, "DocHeader/CustAddr/Code", "", false))
	code := root.SelectElement("DocHeader").SelectElement("CustAddr").SelectElement("Code")
	assert.Equal(t, "XX", code.Text())

	// Missing target is neither created nor reported, even with create on.
	require.NoError(t, Apply(root, "DocHeader/CustAddr/Address2", "", true))
	assert.Nil(t, root.FindElement("DocHeader/CustAddr/Address2"))

	// Missing target with create off does not error either.
	require.NoError(t, Apply(root, "DocHeader/Missing", "", false))
}

func TestApplyCreatesMissingChain(t *testing.T) {
	root := parseRoot(t, `<Document><DocHeader/></Document>`)

	err := Apply(root, "DocHeader/CustAddr/Address3", "Bracknell", true)
	require.NoError(t, err)

	created := root.FindElement("DocHeader/CustAddr/Address3")
	require.NotNil(t, created)
	assert.Equal(t, "Bracknell", created.Text())
}

func TestApplyCreatedElementsAppendLast(t *testing.T) {
	root := parseRoot(t, `<Document><DocHeader><CustAddr><Code>XX</Code><Name>N</Name></CustAddr></DocHeader></Document>`)

	require.NoError(t, Apply(root, "DocHeader/CustAddr/Address2", "Unit 4", true))

	custAddr := root.FindElement("DocHeader/CustAddr")
	children := custAddr.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "Address2", children[2].Tag)
}

func TestApplyPathNotFound(t *testing.T) {
	root := parseRoot(t, `<Document><DocHeader/></Document>`)

	err := Apply(root, "OrderHeader/CustOrder", "CUST-001", false)
	require.Error(t, err)

	var pathErr *PathNotFoundError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "OrderHeader/CustOrder", pathErr.Path)
	assert.Equal(t, "OrderHeader", pathErr.Component)

	// The tree is untouched on failure.
	assert.Nil(t, root.SelectElement("OrderHeader"))
}

func TestResolveSkipsLeadingRootComponent(t *testing.T) {
	root := parseRoot(t, `<OrderLine><LineNo>1</LineNo></OrderLine>`)

	// Line rules are written "OrderLine/LineNo" but applied to the OrderLine
	// element itself.
	target, err := Resolve(root, "OrderLine/LineNo", false)
	require.NoError(t, err)
	assert.Equal(t, "LineNo", target.Tag)

	require.NoError(t, Apply(root, "OrderLine/LineNo", "7", false))
	assert.Equal(t, "7", root.SelectElement("LineNo").Text())
}

func TestResolveCreatedElementsInheritNamespace(t *testing.T) {
	root := parseRoot(t, `<tc:Document xmlns:tc="http://www.truecommerce.com/docs/order"><tc:DocHeader><tc:CustAddr/></tc:DocHeader></tc:Document>`)

	created, err := Resolve(root, "DocHeader/CustAddr/Address2", true)
	require.NoError(t, err)
	assert.Equal(t, "tc", created.Space)
	assert.Equal(t, "Address2", created.Tag)
}

func TestApplyValueEscapedAtSerialization(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<Document><DocHeader><CustAddr><Name>N</Name></CustAddr></DocHeader></Document>`))

	require.NoError(t, Apply(doc.Root(), "DocHeader/CustAddr/Name", "Smith & Sons <Ltd>", false))

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Contains(t, out, "Smith &amp; Sons &lt;Ltd&gt;")
	assert.NotContains(t, out, "Sons <Ltd>")
}
