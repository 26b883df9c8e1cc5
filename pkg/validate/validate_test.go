package validate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/seqard/gqlint/pkg/extract"
	"github.com/seqard/gqlint/pkg/metadata"
	"github.com/seqard/gqlint/pkg/rules"
	"github.com/seqard/gqlint/pkg/source"
)

// stubRule emits a fixed set of findings on every parsed fragment.
type stubRule struct {
	id       string
	findings []rules.Finding
	err      error
	panics   bool
	calls    atomic.Int32
	lastDoc  atomic.Pointer[source.Document]
}

func (r *stubRule) ID() string          { return r.id }
func (r *stubRule) Description() string { return "stub" }

func (r *stubRule) Check(_ context.Context, doc *source.Document, _ *ast.QueryDocument) ([]rules.Finding, error) {
	r.calls.Add(1)
	r.lastDoc.Store(doc)
	if r.panics {
		panic("boom")
	}
	if r.err != nil {
		return nil, r.err
	}
	out := make([]rules.Finding, len(r.findings))
	copy(out, r.findings)
	for i := range out {
		out[i].Rule = r.id
	}
	return out, nil
}

func finding(line, col int, msg string) rules.Finding {
	return rules.Finding{
		Severity: source.SeverityError,
		Range: source.Range{
			Start: source.Position{Line: line, Column: col},
			End:   source.Position{Line: line, Column: col + 1},
		},
		Message: msg,
	}
}

func jsDoc(text string) *source.Document {
	return source.NewDocument("file:///app.js", "javascript", 1, text)
}

const oneLiteral = "const q = gql`query { a }`;\n"

func newValidator(ruleList ...rules.Rule) *Validator {
	return New(rules.NewRegistry(ruleList...), extract.New())
}

func TestValidate_NoLiteralsReturnsEmpty(t *testing.T) {
	v := newValidator(&stubRule{id: "a", findings: []rules.Finding{finding(0, 0, "x")}})

	diags := v.Validate(context.Background(), jsDoc("const x = 1;\n"), 10)

	assert.Empty(t, diags)
}

func TestValidate_NonPositiveCapShortCircuits(t *testing.T) {
	rule := &stubRule{id: "a", findings: []rules.Finding{finding(0, 0, "x")}}
	v := newValidator(rule)

	assert.Empty(t, v.Validate(context.Background(), jsDoc(oneLiteral), 0))
	assert.Empty(t, v.Validate(context.Background(), jsDoc(oneLiteral), -5))
	assert.EqualValues(t, 0, rule.calls.Load(), "no work may happen below the cap")
}

func TestValidate_EmptyRegistryShortCircuits(t *testing.T) {
	v := New(rules.NewRegistry(), extract.New())

	assert.Empty(t, v.Validate(context.Background(), jsDoc(oneLiteral), 10))
}

func TestValidate_NeverExceedsCap(t *testing.T) {
	many := []rules.Finding{
		finding(0, 1, "1"), finding(0, 2, "2"), finding(0, 3, "3"),
		finding(0, 4, "4"), finding(0, 5, "5"),
	}
	v := newValidator(&stubRule{id: "a", findings: many})

	diags := v.Validate(context.Background(), jsDoc(oneLiteral), 3)

	assert.Len(t, diags, 3, "cap applies inside the per-fragment finding loop")
}

func TestValidate_CapStopsLaterFragments(t *testing.T) {
	rule := &stubRule{id: "a", findings: []rules.Finding{finding(0, 0, "x")}}
	v := newValidator(rule)
	text := "const a = gql`query { a }`;\n" +
		"const b = gql`query { b }`;\n" +
		"const c = gql`query { c }`;\n"

	diags := v.Validate(context.Background(), jsDoc(text), 1)

	assert.Len(t, diags, 1)
	assert.EqualValues(t, 1, rule.calls.Load(), "validation must stop at the cap")
}

func TestValidate_UnparsableFragmentSkippedSilently(t *testing.T) {
	rule := &stubRule{id: "a", findings: []rules.Finding{finding(0, 0, "x")}}
	v := newValidator(rule)
	text := "const bad = gql`query {`;\n" +
		"const good = gql`query { a }`;\n"

	diags := v.Validate(context.Background(), jsDoc(text), 10)

	require.Len(t, diags, 1)
	assert.EqualValues(t, 1, rule.calls.Load(), "only the parsable fragment reaches the rules")
	// The surviving diagnostic comes from the second literal on line 1.
	assert.Equal(t, 1, diags[0].Range.Start.Line)
}

func TestValidate_RuleGetsFragmentAsStandaloneDocument(t *testing.T) {
	rule := &stubRule{id: "a"}
	v := newValidator(rule)

	v.Validate(context.Background(), jsDoc(oneLiteral), 10)

	fragDoc := rule.lastDoc.Load()
	require.NotNil(t, fragDoc)
	assert.Equal(t, "query { a }", fragDoc.Text)
	assert.Equal(t, "graphql", fragDoc.Language)
	assert.Equal(t, "file:///app.js", fragDoc.URI)
}

func TestValidate_FindingsAppendInRegistryOrder(t *testing.T) {
	a := &stubRule{id: "a", findings: []rules.Finding{finding(0, 1, "from a")}}
	b := &stubRule{id: "b", findings: []rules.Finding{finding(0, 2, "from b")}}
	c := &stubRule{id: "c", findings: []rules.Finding{finding(0, 3, "from c")}}
	v := newValidator(a, b, c)

	diags := v.Validate(context.Background(), jsDoc(oneLiteral), 10)

	require.Len(t, diags, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{diags[0].Rule, diags[1].Rule, diags[2].Rule})
}

func TestValidate_CapTruncatesInRegistryOrder(t *testing.T) {
	a := &stubRule{id: "a", findings: []rules.Finding{finding(0, 1, "from a")}}
	b := &stubRule{id: "b", findings: []rules.Finding{finding(0, 2, "from b")}}
	c := &stubRule{id: "c", findings: []rules.Finding{finding(0, 3, "from c")}}
	v := newValidator(a, b, c)

	diags := v.Validate(context.Background(), jsDoc(oneLiteral), 2)

	require.Len(t, diags, 2)
	assert.Equal(t, "a", diags[0].Rule)
	assert.Equal(t, "b", diags[1].Rule)
}

func TestValidate_RuleFailureIsolated(t *testing.T) {
	erroring := &stubRule{id: "err", err: errors.New("rule blew up")}
	panicking := &stubRule{id: "panic", panics: true}
	healthy := &stubRule{id: "ok", findings: []rules.Finding{finding(0, 1, "survived")}}
	v := newValidator(erroring, panicking, healthy)

	diags := v.Validate(context.Background(), jsDoc(oneLiteral), 10)

	require.Len(t, diags, 1)
	assert.Equal(t, "ok", diags[0].Rule)
	assert.Equal(t, "survived", diags[0].Message)
}

func TestValidate_RegistryOrderOnlyAffectsOutputOrder(t *testing.T) {
	mk := func() (*stubRule, *stubRule) {
		return &stubRule{id: "a", findings: []rules.Finding{finding(0, 1, "from a")}},
			&stubRule{id: "b", findings: []rules.Finding{finding(0, 2, "from b")}}
	}

	a1, b1 := mk()
	forward := newValidator(a1, b1).Validate(context.Background(), jsDoc(oneLiteral), 10)
	a2, b2 := mk()
	backward := newValidator(b2, a2).Validate(context.Background(), jsDoc(oneLiteral), 10)

	require.Len(t, forward, 2)
	require.Len(t, backward, 2)
	assert.ElementsMatch(t, forward, backward)
	assert.Equal(t, "a", forward[0].Rule)
	assert.Equal(t, "b", backward[0].Rule)
}

func TestValidate_RemapsIntoHostCoordinates(t *testing.T) {
	// Finding on the fragment's first line: both line and column shift.
	rule := &stubRule{id: "a", findings: []rules.Finding{finding(0, 3, "x")}}
	v := newValidator(rule)

	// Literal body begins at line 2, column 14 of the host file.
	text := "//\n//\nconst q = gql`query { a }`;\n"
	diags := v.Validate(context.Background(), jsDoc(text), 10)

	require.Len(t, diags, 1)
	assert.Equal(t, source.Position{Line: 2, Column: 17}, diags[0].Range.Start)
}

func TestValidate_EndToEnd_MisspelledNamespaceField(t *testing.T) {
	meta := metadata.NewStaticSource(map[string]map[string]string{
		"Account": {"Name": "String", "Industry": "String"},
	})
	v := New(rules.Default(meta, "uiapi"), extract.New())

	text := "import { gql } from 'lib';\n" +
		"\n" +
		"const GET_ACCOUNT = gql`\n" +
		"  query {\n" +
		"    uiapi {\n" +
		"      query {\n" +
		"        Account {\n" +
		"          Nme\n" +
		"        }\n" +
		"      }\n" +
		"    }\n" +
		"  }\n" +
		"`;\n" +
		"const BROKEN = gql`query {`;\n"

	diags := v.Validate(context.Background(), jsDoc(text), 10)

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "known-object-fields", d.Rule)
	assert.Equal(t, source.SeverityError, d.Severity)
	assert.Equal(t, `Object "Account" has no field "Nme". Did you mean "Name"?`, d.Message)
	// "Nme" sits at host line 7, bytes 10-13.
	assert.Equal(t, source.Range{
		Start: source.Position{Line: 7, Column: 10},
		End:   source.Position{Line: 7, Column: 13},
	}, d.Range)
}

func TestValidate_EndToEnd_AllLiteralsMalformed(t *testing.T) {
	v := New(rules.Default(metadata.NewStaticSource(nil), "uiapi"), extract.New())
	text := "const a = gql`query {`;\nconst b = gql`${oops}`;\n"

	assert.Empty(t, v.Validate(context.Background(), jsDoc(text), 10))
}
