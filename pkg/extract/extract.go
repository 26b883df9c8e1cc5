// Package extract locates embedded GraphQL template literals inside
// JavaScript and TypeScript source using tree-sitter. Each match becomes a
// source.Fragment: the literal body verbatim (interpolation included, it is
// the parser's job to reject it later) plus the body's position in the host
// document.
package extract

import (
	"context"
	"embed"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/seqard/gqlint/pkg/source"
)

//go:embed queries/tagged.scm
var queryFS embed.FS

// DefaultTags are the template tag names recognized when none are configured.
var DefaultTags = []string{"gql", "graphql"}

// Extractor finds tagged template literals whose tag name is in its accepted
// set. Safe for concurrent use; compiled tree-sitter queries are cached per
// grammar.
type Extractor struct {
	tags map[string]bool

	mu      sync.Mutex
	queries map[string]*sitter.Query
}

// New builds an extractor accepting the given tag names. With no tags it
// falls back to DefaultTags.
func New(tags ...string) *Extractor {
	if len(tags) == 0 {
		tags = DefaultTags
	}
	accepted := make(map[string]bool, len(tags))
	for _, t := range tags {
		accepted[t] = true
	}
	return &Extractor{
		tags:    accepted,
		queries: make(map[string]*sitter.Query),
	}
}

func (e *Extractor) queryFor(canonical string) (*sitter.Query, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if q, ok := e.queries[canonical]; ok {
		return q, nil
	}
	data, err := queryFS.ReadFile("queries/tagged.scm")
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(data, grammarFor(canonical))
	if err != nil {
		return nil, err
	}
	e.queries[canonical] = q
	return q, nil
}

// Scan visits every accepted query literal in the document, in discovery
// order, calling visit with each fragment. Returning false from visit stops
// the walk. Documents in languages we have no grammar for, and documents
// tree-sitter cannot parse, yield no fragments; neither is an error.
func (e *Extractor) Scan(ctx context.Context, doc *source.Document, visit func(source.Fragment) bool) {
	canonical := canonicalLanguage(doc.Language)
	if canonical == "" {
		return
	}

	src := []byte(doc.Text)

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(canonical))
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return
	}
	defer tree.Close()

	query, err := e.queryFor(canonical)
	if err != nil {
		return
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	for {
		match, ok := qc.NextMatch()
		if !ok {
			return
		}
		match = qc.FilterPredicates(match, src)

		var tagNode, litNode *sitter.Node
		for _, c := range match.Captures {
			switch query.CaptureNameForId(c.Index) {
			case "tag":
				tagNode = c.Node
			case "literal":
				litNode = c.Node
			}
		}
		if tagNode == nil || litNode == nil {
			continue
		}
		if !e.tags[nodeText(tagNode, src)] {
			continue
		}

		frag, ok := literalBody(litNode, src)
		if !ok {
			continue
		}
		if !visit(frag) {
			return
		}
	}
}

// Extract collects every fragment of the document. Convenience wrapper over
// Scan for callers that do not need early exit.
func (e *Extractor) Extract(ctx context.Context, doc *source.Document) []source.Fragment {
	var frags []source.Fragment
	e.Scan(ctx, doc, func(f source.Fragment) bool {
		frags = append(frags, f)
		return true
	})
	return frags
}

// literalBody strips the surrounding backticks from a template_string node.
// The body starts one column after the node on the node's own line.
func literalBody(node *sitter.Node, src []byte) (source.Fragment, bool) {
	start, end := node.StartByte(), node.EndByte()
	if end < start+2 || int(end) > len(src) {
		return source.Fragment{}, false
	}
	pt := node.StartPoint()
	return source.Fragment{
		Text: string(src[start+1 : end-1]),
		Offset: source.Offset{
			Line:   int(pt.Row),
			Column: int(pt.Column) + 1,
		},
	}, true
}

func nodeText(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}
