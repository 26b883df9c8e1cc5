package rules

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/seqard/gqlint/pkg/source"
)

// NoUnusedFragments flags fragment definitions that are never spread
// anywhere in the query document.
type NoUnusedFragments struct{}

func (r *NoUnusedFragments) ID() string { return "no-unused-fragments" }

func (r *NoUnusedFragments) Description() string {
	return "every defined fragment must be spread at least once"
}

// Check implements Rule.
func (r *NoUnusedFragments) Check(_ context.Context, _ *source.Document, query *ast.QueryDocument) ([]Finding, error) {
	spread := make(map[string]bool)
	visit := func(sel ast.Selection) {
		if s, ok := sel.(*ast.FragmentSpread); ok {
			spread[s.Name] = true
		}
	}
	for _, op := range query.Operations {
		walkSelections(op.SelectionSet, visit)
	}
	for _, frag := range query.Fragments {
		walkSelections(frag.SelectionSet, visit)
	}

	var findings []Finding
	for _, frag := range query.Fragments {
		if spread[frag.Name] {
			continue
		}
		findings = append(findings, Finding{
			Severity: source.SeverityWarning,
			Range:    rangeAt(frag.Position, len(frag.Name)),
			Message:  fmt.Sprintf("Fragment %q is never used.", frag.Name),
			Rule:     r.ID(),
		})
	}
	return findings, nil
}
