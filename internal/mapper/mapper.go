// =============================================================================
// CSV to EDI Mapper - Mapping Engine
// =============================================================================
//
// This module is the core of the converter. It owns the transform of one
// order: given a freshly parsed base template document, a header record and
// an ordered sequence of line-item records, it mutates the document in place:
//
//   1. Header mapping     - apply the static header rules to the document
//   2. Line expansion     - replicate the template OrderLine, one per record
//   3. Trailer aggregate  - count OrderLine elements into DocTrailer/TotalLines
//
// The whole transform is synchronous and single-threaded. The document is
// owned exclusively by the invocation; callers processing a batch run one
// independent transform per order, each with its own freshly parsed copy of
// the base template. The transform is deterministic and idempotent: it either
// completes fully or fails before any output is produced.
//
// =============================================================================

package mapper

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/mapping"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/xmltree"
)

// documentTag is the element the header and trailer rules resolve against.
const documentTag = "Document"

// Mapper applies one parsed order to one base template document.
type Mapper struct {
	log *zap.Logger
}

// New creates a Mapper. A nil logger disables logging.
func New(log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mapper{log: log}
}

// LoadTemplate parses the base XML template from disk. Each transform must
// work on its own copy, so this is called once per order.
func LoadTemplate(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("base template has no root element")
	}
	return doc, nil
}

// Transform mutates doc in place so that it describes the parsed order.
// On error the document must be discarded; no output is written for it.
func (m *Mapper) Transform(doc *etree.Document, header csvparser.HeaderRecord, items []csvparser.LineItemRecord) error {
	root, err := documentRoot(doc)
	if err != nil {
		return err
	}

	if err := m.applyHeader(root, header); err != nil {
		return err
	}

	if err := m.expandLineItems(root, items); err != nil {
		return err
	}

	return m.writeTrailer(root)
}

// applyHeader walks the static header mapping table and applies each rule.
// Empty CSV values are a no-op by the mutator contract, so template values
// survive fields the back office left blank.
func (m *Mapper) applyHeader(root *etree.Element, header csvparser.HeaderRecord) error {
	for _, rule := range mapping.HeaderRules {
		value := header[rule.Field]
		if err := xmltree.Apply(root, rule.Path, value, rule.CreateIfMissing); err != nil {
			return fmt.Errorf("header field %s: %w", rule.Field, err)
		}
		if value != "" {
			m.log.Debug("mapped header field",
				zap.String("field", rule.Field),
				zap.String("path", rule.Path))
		}
	}
	return nil
}

// writeTrailer counts the OrderLine elements present after expansion and
// writes the count into the trailer. Runs unconditionally, zero included.
func (m *Mapper) writeTrailer(root *etree.Element) error {
	count := len(root.SelectElements(orderLineTag))
	if err := xmltree.Apply(root, mapping.TotalLinesPath, strconv.Itoa(count), true); err != nil {
		return fmt.Errorf("trailer total: %w", err)
	}

	m.log.Debug("wrote trailer total", zap.Int("total_lines", count))
	return nil
}

// documentRoot locates the order document element the mapping paths are
// relative to. The template may use Document as its root element or nest it
// inside an envelope.
func documentRoot(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root.Tag == documentTag {
		return root, nil
	}
	if el := root.FindElement("//" + documentTag); el != nil {
		return el, nil
	}
	return nil, &xmltree.PathNotFoundError{Path: documentTag, Component: documentTag}
}
