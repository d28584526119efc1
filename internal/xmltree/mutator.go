// =============================================================================
// CSV to EDI Mapper - Tree Mutator Module
// =============================================================================
//
// This module applies one field value to one location in the parsed XML
// document. The document is an etree ownership tree: every element owns its
// children exclusively, so walking and extending a path never aliases nodes.
//
// Path expressions are plain element-name chains ("DocHeader/CustAddr/Code")
// resolved component-by-component from a section root. A leading component
// that names the section root itself is accepted and skipped, so line-item
// rules written as "OrderLine/LineNo" resolve against the OrderLine element
// they are applied to.
//
// Entity safety: values are stored as raw text; etree escapes reserved
// characters (&, <, >) in character data at serialization, so any value set
// here round-trips losslessly through the output stage.
//
// =============================================================================

package xmltree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// PathNotFoundError reports a mapping target that is absent from the tree
// and not creatable under its rule. It is fatal to the transform.
type PathNotFoundError struct {
	// Path is the full path expression that failed to resolve.
	Path string

	// Component is the first path component that could not be found.
	Component string
}

// Error implements the error interface.
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %q not found in template: missing element %q", e.Path, e.Component)
}

// Apply resolves path from root and sets the resolved element's text to
// value, mutating the tree in place.
//
// Behaviour:
//   - An empty value is a strict no-op: nothing is resolved, created or
//     overwritten. Empty CSV fields never erase an existing template value.
//   - A missing component is created (together with any missing ancestors)
//     as the last child of its parent when createIfMissing is true. Created
//     elements inherit the parent's namespace so they stay valid under the
//     document's declared namespace.
//   - A missing component with createIfMissing false returns a
//     *PathNotFoundError and leaves the tree untouched.
func Apply(root *etree.Element, path, value string, createIfMissing bool) error {
	if value == "" {
		return nil
	}

	target, err := Resolve(root, path, createIfMissing)
	if err != nil {
		return err
	}

	target.SetText(value)
	return nil
}

// Resolve walks path from root and returns the element it names, creating
// missing components when createIfMissing is true.
func Resolve(root *etree.Element, path string, createIfMissing bool) (*etree.Element, error) {
	components := strings.Split(path, "/")

	// A leading component naming the section root refers to the root itself.
	if len(components) > 0 && components[0] == root.Tag {
		components = components[1:]
	}

	current := root
	for _, component := range components {
		if component == "" {
			continue
		}

		next := current.SelectElement(component)
		if next == nil {
			if !createIfMissing {
				return nil, &PathNotFoundError{Path: path, Component: component}
			}
			next = current.CreateElement(component)
			next.Space = current.Space
		}
		current = next
	}

	return current, nil
}
