// Package source holds the value types shared across the lint pipeline:
// documents, positions, ranges, extracted fragments and diagnostics.
// Positions are 0-based with byte columns; ranges are end-exclusive.
package source

import "fmt"

// Position is a 0-based (line, column) location. Column counts bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open [Start, End) span within one coordinate space.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Offset is the position within a host document where a fragment's first
// character sits. Column is only meaningful for the fragment's first line.
type Offset struct {
	Line   int
	Column int
}

// Shift translates a fragment-relative range into the host document's
// coordinate space. Only endpoints on the fragment's first line (line 0)
// receive the column offset; every endpoint receives the line offset.
// Lines after the first start at column 0 of their own host line, so their
// columns already agree with the host document.
func (r Range) Shift(off Offset) Range {
	shift := func(p Position) Position {
		if p.Line == 0 {
			p.Column += off.Column
		}
		p.Line += off.Line
		return p
	}
	return Range{Start: shift(r.Start), End: shift(r.End)}
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalJSON renders severities as their lowercase names.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Document is an immutable snapshot of a file handed in by the caller.
// The pipeline never modifies it.
type Document struct {
	URI      string
	Language string
	Version  int
	Text     string
}

// NewDocument builds a document snapshot.
func NewDocument(uri, language string, version int, text string) *Document {
	return &Document{URI: uri, Language: language, Version: version, Text: text}
}

// Fragment is one embedded query literal lifted out of a host document.
// Text is the literal body, verbatim; Offset locates its first character in
// the host document. Fragments live for one validation pass only.
type Fragment struct {
	Text   string
	Offset Offset
}

// Diagnostic is a finding translated into host-document coordinates, the
// externally visible result unit. Rule carries the producing rule's ID so a
// caller can offer suppression.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Rule     string   `json:"rule"`
}
