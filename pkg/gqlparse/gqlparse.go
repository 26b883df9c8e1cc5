// Package gqlparse wraps the gqlparser query parser behind a Result-style
// boundary. Callers learn only whether a fragment parsed; no error value
// crosses this package. Fragments extracted from live source files routinely
// contain unresolved interpolation or half-typed queries, and the pipeline's
// contract is to drop those silently rather than surface parser noise.
package gqlparse

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Query parses one fragment's text as a standalone GraphQL query document.
// ok is false on any syntax error; a partial tree is never returned.
func Query(name, text string) (doc *ast.QueryDocument, ok bool) {
	defer func() {
		if recover() != nil {
			doc, ok = nil, false
		}
	}()

	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: text})
	if err != nil || doc == nil {
		return nil, false
	}
	// Empty input parses to an empty document; there is nothing to check in
	// one, so treat it the same as a failure.
	if len(doc.Operations) == 0 && len(doc.Fragments) == 0 {
		return nil, false
	}
	return doc, true
}
