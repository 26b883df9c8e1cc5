// Package validate composes the pipeline: extract every embedded query from
// a document, parse each one, fan out the rule registry over the parsed
// tree, and remap findings into the document's coordinate space.
package validate

import (
	"context"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/seqard/gqlint/pkg/extract"
	"github.com/seqard/gqlint/pkg/gqlparse"
	"github.com/seqard/gqlint/pkg/rules"
	"github.com/seqard/gqlint/pkg/source"
)

// Validator runs the registry's rules over every embedded query of a
// document. Construct once and reuse; it holds no per-document state.
type Validator struct {
	registry  *rules.Registry
	extractor *extract.Extractor
}

// New builds a validator from an already-constructed registry and extractor.
func New(registry *rules.Registry, extractor *extract.Extractor) *Validator {
	return &Validator{registry: registry, extractor: extractor}
}

// Validate returns at most maxDiagnostics diagnostics for the document, in
// fragment discovery order, then registry order, then each rule's own
// emission order. It never fails: unparsable fragments, erroring rules and
// panicking rules all contribute nothing. With a non-positive cap or an
// empty registry no extraction work happens at all.
//
// Fragments are processed strictly one at a time; within a fragment all
// rules run concurrently and are joined before their findings are collected.
func (v *Validator) Validate(ctx context.Context, doc *source.Document, maxDiagnostics int) []source.Diagnostic {
	if maxDiagnostics <= 0 || v.registry.Len() == 0 {
		return nil
	}

	var out []source.Diagnostic
	v.extractor.Scan(ctx, doc, func(frag source.Fragment) bool {
		query, ok := gqlparse.Query(doc.URI, frag.Text)
		if !ok {
			return true
		}

		fragDoc := source.NewDocument(doc.URI, "graphql", doc.Version, frag.Text)
		for _, finding := range v.runRules(ctx, fragDoc, query) {
			if len(out) >= maxDiagnostics {
				return false
			}
			out = append(out, source.Diagnostic{
				Severity: finding.Severity,
				Range:    finding.Range.Shift(frag.Offset),
				Message:  finding.Message,
				Rule:     finding.Rule,
			})
		}
		return len(out) < maxDiagnostics
	})
	return out
}

// runRules fans the registry out over one parsed fragment and joins all of
// them. Findings come back grouped in registry order regardless of which
// rule finished first. A rule that errors or panics loses only its own
// findings; the join always waits for every rule.
func (v *Validator) runRules(ctx context.Context, fragDoc *source.Document, query *ast.QueryDocument) []rules.Finding {
	active := v.registry.Rules()
	perRule := make([][]rules.Finding, len(active))

	var wg sync.WaitGroup
	for i, rule := range active {
		wg.Add(1)
		go func(i int, rule rules.Rule) {
			defer wg.Done()
			defer func() {
				if recover() != nil {
					perRule[i] = nil
				}
			}()
			findings, err := rule.Check(ctx, fragDoc, query)
			if err != nil {
				return
			}
			perRule[i] = findings
		}(i, rule)
	}
	wg.Wait()

	var all []rules.Finding
	for _, findings := range perRule {
		all = append(all, findings...)
	}
	return all
}
