package rules

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/seqard/gqlint/pkg/metadata"
	"github.com/seqard/gqlint/pkg/source"
)

// DefaultNamespace is the watched namespace when none is configured.
const DefaultNamespace = "uiapi"

// Connection-shape plumbing under a watched entity. Wrappers are descended
// through; meta fields are never checked against entity metadata.
var (
	wrapperFields = map[string]bool{"edges": true, "node": true}
	metaFields    = map[string]bool{
		"pageInfo":   true,
		"totalCount": true,
		"cursor":     true,
		"__typename": true,
	}
)

// KnownObjectFields flags fields selected under the watched namespace that
// the entity's metadata does not know about, with a nearest-name suggestion.
// Entities with no available metadata produce no findings: an expired
// session or an unreachable org must degrade to silence, not to errors.
type KnownObjectFields struct {
	Namespace string
	Meta      metadata.Source
}

func (r *KnownObjectFields) ID() string { return "known-object-fields" }

func (r *KnownObjectFields) Description() string {
	return fmt.Sprintf("fields selected under the %q namespace must exist on the queried object", r.namespace())
}

func (r *KnownObjectFields) namespace() string {
	if r.Namespace == "" {
		return DefaultNamespace
	}
	return r.Namespace
}

// Check implements Rule.
func (r *KnownObjectFields) Check(ctx context.Context, _ *source.Document, query *ast.QueryDocument) ([]Finding, error) {
	if r.Meta == nil {
		return nil, nil
	}

	var findings []Finding
	visit := func(sel ast.Selection) {
		field, ok := sel.(*ast.Field)
		if !ok {
			return
		}
		if field.Name != r.namespace() && field.Alias != r.namespace() {
			return
		}
		findings = append(findings, r.checkNamespace(ctx, field.SelectionSet)...)
	}

	for _, op := range query.Operations {
		walkSelections(op.SelectionSet, visit)
	}
	for _, frag := range query.Fragments {
		walkSelections(frag.SelectionSet, visit)
	}
	return findings, nil
}

// checkNamespace handles the selection set directly under a namespace root.
// A child named "query" is the namespace's query wrapper and its children
// are entities; any other child names an entity itself.
func (r *KnownObjectFields) checkNamespace(ctx context.Context, set ast.SelectionSet) []Finding {
	var findings []Finding
	for _, sel := range set {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		if field.Name == "query" {
			for _, inner := range field.SelectionSet {
				if entity, ok := inner.(*ast.Field); ok {
					findings = append(findings, r.checkEntity(ctx, entity)...)
				}
			}
			continue
		}
		findings = append(findings, r.checkEntity(ctx, field)...)
	}
	return findings
}

func (r *KnownObjectFields) checkEntity(ctx context.Context, entity *ast.Field) []Finding {
	info, err := r.Meta.GetObjectInfo(ctx, entity.Name)
	if err != nil || info == nil {
		return nil
	}
	return r.checkEntityFields(entity.SelectionSet, info)
}

func (r *KnownObjectFields) checkEntityFields(set ast.SelectionSet, info *metadata.ObjectInfo) []Finding {
	var findings []Finding
	for _, sel := range set {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		switch {
		case wrapperFields[field.Name]:
			findings = append(findings, r.checkEntityFields(field.SelectionSet, info)...)
		case metaFields[field.Name]:
			// connection plumbing, not an entity field
		case !info.HasField(field.Name):
			message := fmt.Sprintf("Object %q has no field %q.", info.Name, field.Name)
			if suggestion := nearestName(field.Name, info.FieldNames()); suggestion != "" {
				message += fmt.Sprintf(" Did you mean %q?", suggestion)
			}
			findings = append(findings, Finding{
				Severity: source.SeverityError,
				Range:    rangeAt(field.Position, len(field.Name)),
				Message:  message,
				Rule:     r.ID(),
			})
		}
	}
	return findings
}
