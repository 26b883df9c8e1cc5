package rules

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/seqard/gqlint/pkg/source"
)

// KnownFragmentNames flags fragment spreads that name no fragment definition
// in the same query document.
type KnownFragmentNames struct{}

func (r *KnownFragmentNames) ID() string { return "known-fragment-names" }

func (r *KnownFragmentNames) Description() string {
	return "fragment spreads must reference a fragment defined in the same query"
}

// Check implements Rule.
func (r *KnownFragmentNames) Check(_ context.Context, _ *source.Document, query *ast.QueryDocument) ([]Finding, error) {
	defined := make([]string, 0, len(query.Fragments))
	definedSet := make(map[string]bool, len(query.Fragments))
	for _, frag := range query.Fragments {
		defined = append(defined, frag.Name)
		definedSet[frag.Name] = true
	}

	var findings []Finding
	visit := func(sel ast.Selection) {
		spread, ok := sel.(*ast.FragmentSpread)
		if !ok || definedSet[spread.Name] {
			return
		}
		message := fmt.Sprintf("Unknown fragment %q.", spread.Name)
		if suggestion := nearestName(spread.Name, defined); suggestion != "" {
			message += fmt.Sprintf(" Did you mean %q?", suggestion)
		}
		findings = append(findings, Finding{
			Severity: source.SeverityError,
			Range:    rangeAt(spread.Position, len(spread.Name)),
			Message:  message,
			Rule:     r.ID(),
		})
	}

	for _, op := range query.Operations {
		walkSelections(op.SelectionSet, visit)
	}
	for _, frag := range query.Fragments {
		walkSelections(frag.SelectionSet, visit)
	}
	return findings, nil
}
