// =============================================================================
// CSV to EDI Mapper - Line-Item Expander
// =============================================================================
//
// The base template carries exactly one OrderLine element, which acts as the
// structural prototype for every generated line item. Expansion replicates it
// once per parsed line-item record:
//
//   - record 0 mutates the template subtree directly
//   - record i (i >= 1) deep-clones the pristine, unmodified template
//     structure and inserts the clone immediately after the previous line
//
// Cloning always starts from a snapshot taken before any mutation, so values
// set on one line never bleed into the next. Document order of the generated
// elements is exactly the parse order of the records; the LINE-NO field is
// mapped like any other and never drives ordering or renumbering.
//
// With zero records the template line is removed entirely, leaving zero
// OrderLine elements for the trailer aggregator to count.
//
// =============================================================================

package mapper

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/mapping"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/xmltree"
)

// orderLineTag is the line-item element name in the order document.
const orderLineTag = "OrderLine"

// expandLineItems replicates the template OrderLine under root, one element
// per record, and applies the line mapping rules to each.
func (m *Mapper) expandLineItems(root *etree.Element, items []csvparser.LineItemRecord) error {
	template := root.SelectElement(orderLineTag)
	if template == nil {
		return &xmltree.PathNotFoundError{Path: orderLineTag, Component: orderLineTag}
	}

	if len(items) == 0 {
		root.RemoveChild(template)
		m.log.Debug("no line items; removed template line")
		return nil
	}

	// Snapshot before any mutation: every clone is struck from the pristine
	// template, never from a previously populated line.
	pristine := template.Copy()

	if err := applyLineRules(template, items[0]); err != nil {
		return fmt.Errorf("line item 1: %w", err)
	}

	previous := template
	for i, item := range items[1:] {
		clone := pristine.Copy()
		root.InsertChildAt(previous.Index()+1, clone)

		if err := applyLineRules(clone, item); err != nil {
			return fmt.Errorf("line item %d: %w", i+2, err)
		}
		previous = clone
	}

	m.log.Debug("expanded line items", zap.Int("count", len(items)))
	return nil
}

// applyLineRules applies the static line mapping table to one OrderLine
// element. The rule paths are relative to the element itself.
func applyLineRules(line *etree.Element, item csvparser.LineItemRecord) error {
	for _, rule := range mapping.LineRules {
		if err := xmltree.Apply(line, rule.Path, item[rule.Field], rule.CreateIfMissing); err != nil {
			return fmt.Errorf("field %s: %w", rule.Field, err)
		}
	}
	return nil
}
