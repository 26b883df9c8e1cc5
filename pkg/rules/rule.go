// Package rules holds the pluggable checks run over each parsed query
// fragment, and the fixed registry that orders them.
package rules

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/seqard/gqlint/pkg/metadata"
	"github.com/seqard/gqlint/pkg/source"
)

// Finding is one issue reported by a rule, in the fragment's own coordinate
// space (line 0 is the fragment's first line). Immutable once produced.
type Finding struct {
	Severity source.Severity
	Range    source.Range
	Message  string
	Rule     string
}

// Rule is a single check over a parsed query. Implementations must not
// mutate the tree, must not depend on other rules, and must be deterministic
// for a fixed tree and fixed external state. The orchestrator may run rules
// concurrently with each other.
//
// An error return means the rule could not run; its findings (if any) are
// discarded and no other rule is affected.
type Rule interface {
	ID() string
	Description() string
	Check(ctx context.Context, doc *source.Document, query *ast.QueryDocument) ([]Finding, error)
}

// Registry is the ordered set of active rules. It is populated once at
// startup and read-only afterwards.
type Registry struct {
	rules []Rule
}

// NewRegistry builds a registry over the given rules, in order.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// Rules returns the active rules in registry order. Callers must not modify
// the returned slice.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Len returns the number of active rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Default builds the standard registry: the watched-namespace field check
// backed by meta, plus the fragment hygiene rules.
func Default(meta metadata.Source, namespace string) *Registry {
	return NewRegistry(
		&KnownObjectFields{Namespace: namespace, Meta: meta},
		&KnownFragmentNames{},
		&NoUnusedFragments{},
	)
}

// rangeAt converts a gqlparser position (1-based) to a fragment-relative
// range (0-based, end-exclusive) covering length bytes.
func rangeAt(pos *ast.Position, length int) source.Range {
	if pos == nil {
		return source.Range{}
	}
	start := source.Position{Line: pos.Line - 1, Column: pos.Column - 1}
	return source.Range{
		Start: start,
		End:   source.Position{Line: start.Line, Column: start.Column + length},
	}
}

// walkSelections visits every selection in the set, depth first, in document
// order.
func walkSelections(set ast.SelectionSet, visit func(ast.Selection)) {
	for _, sel := range set {
		visit(sel)
		switch s := sel.(type) {
		case *ast.Field:
			walkSelections(s.SelectionSet, visit)
		case *ast.InlineFragment:
			walkSelections(s.SelectionSet, visit)
		}
	}
}
