// =============================================================================
// CSV to EDI Mapper - Field Mapping Tables
// =============================================================================
//
// This module holds the static field -> XML path mapping tables for the
// TrueCommerce order document. The tables are declarative data, not branching
// logic: adding a field is a data change here, nothing else.
//
// Header rule paths are relative to the order document root element
// (the Document element of the base template). Line rule paths are relative
// to the line-item root (the OrderLine element); a leading path component
// that names the section root refers to the root itself.
//
// =============================================================================

package mapping

// Rule maps one CSV source field to one XML target location.
type Rule struct {
	// Field is the CSV field name, e.g. "CUST-ORDER".
	Field string

	// Path is the target path expression relative to the section root.
	Path string

	// CreateIfMissing allows the tree mutator to create the target element
	// (and any missing ancestors) when it is absent from the template.
	CreateIfMissing bool
}

// TotalLinesPath is the derived trailer field written after line-item
// expansion. It is always created when absent.
const TotalLinesPath = "DocTrailer/TotalLines"

// HeaderRules is the mapping table for the order header block.
// Address2/Address3 are the only header targets the base template may omit.
var HeaderRules = []Rule{
	{Field: "CUST-ORDER", Path: "OrderHeader/CustOrder"},
	{Field: "CUST-ADDR-CODE", Path: "DocHeader/CustAddr/Code"},
	{Field: "CUST-ADDR-NAME", Path: "DocHeader/CustAddr/Name"},
	{Field: "CUST-ADDR-ADDRESS1", Path: "DocHeader/CustAddr/Address1"},
	{Field: "CUST-ADDR-ADDRESS2", Path: "DocHeader/CustAddr/Address2", CreateIfMissing: true},
	{Field: "CUST-ADDR-ADDRESS3", Path: "DocHeader/CustAddr/Address3", CreateIfMissing: true},
	{Field: "DELIVERY-DUE-DATE", Path: "OrderHeader/Delivery/ReqDel/Date"},
	{Field: "DELIVERY-TO-CODE", Path: "OrderHeader/Delivery/DeliverTo/Code"},
	{Field: "DELIVERY-TO-NAME", Path: "OrderHeader/Delivery/DeliverTo/Name"},
	{Field: "DELIVERY-TO-ADDRESS1", Path: "OrderHeader/Delivery/DeliverTo/Address1"},
	{Field: "INVOICE-TO-CODE", Path: "OrderHeader/Locations/InvoiceTo/Code"},
	{Field: "INVOICE-TO-NAME", Path: "OrderHeader/Locations/InvoiceTo/Name"},
	{Field: "INVOICE-TO-ADDRESS1", Path: "OrderHeader/Locations/InvoiceTo/Address1"},
	{Field: "TOTAL-ORDER-UNITS", Path: "OrderHeader/TotalOrderUnits"},
	{Field: "TOTAL-ORDER-VALUE", Path: "OrderHeader/TotalOrderVal"},
}

// LineRules is the mapping table for one line-item record, applied to each
// OrderLine element (the template for the first record, a clone for the rest).
var LineRules = []Rule{
	{Field: "LINE-NO", Path: "OrderLine/LineNo"},
	{Field: "LINE-CODE", Path: "OrderLine/Item/CustItem/Code"},
	{Field: "LINE-DESC", Path: "OrderLine/Item/Desc1"},
	{Field: "LINE-QUANT", Path: "OrderLine/OrderQty/Unit"},
	{Field: "LINE-PRICE", Path: "OrderLine/OrderQty/CostPrice"},
	{Field: "LINE-TOTAL-AMOUNT", Path: "OrderLine/OrderQty/LineAmount"},
}
