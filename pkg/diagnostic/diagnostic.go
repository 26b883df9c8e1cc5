// Package diagnostic renders lint results in a compiler-style layout: a
// severity header, a location arrow, and the offending source line with a
// caret underline.
package diagnostic

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seqard/gqlint/pkg/source"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

func severityStyle(sev source.Severity) lipgloss.Style {
	switch sev {
	case source.SeverityWarning:
		return warningStyle
	case source.SeverityInfo:
		return infoStyle
	default:
		return errorStyle
	}
}

// RenderHeader renders the first line of a diagnostic:
//
//	error[known-object-fields]: Object "Account" has no field "Nme".
func RenderHeader(sev source.Severity, rule, message string) string {
	label := severityStyle(sev).Render(sev.String())
	if rule != "" {
		label += ruleStyle.Render("[" + rule + "]")
	}
	return label + ": " + message
}

// RenderLocation renders a location arrow like "--> app.js:8:11".
// Line and column are 1-based for display.
func RenderLocation(filename string, line, column int) string {
	loc := filename + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
	arrow := gutterStyle.Render("-->")
	return " " + arrow + " " + loc
}

// RenderSnippet renders a source line with its number, gutter, and a caret
// underline of the given length:
//
//	8 |           Nme
//	  |           ^^^
//
// Column is 1-based; zero or negative values are clamped.
func RenderSnippet(line string, lineNum, column, length int, sev source.Severity) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	numStr := strconv.Itoa(lineNum)
	lineNumStyled := gutterStyle.Render(numStr)
	pipe := gutterStyle.Render("|")
	emptyGutter := strings.Repeat(" ", len(numStr))

	codeLine := lineNumStyled + " " + pipe + " " + line

	padding := strings.Repeat(" ", column-1)
	carets := severityStyle(sev).Render(strings.Repeat("^", length))
	underLine := emptyGutter + " " + pipe + " " + padding + carets

	return codeLine + "\n" + underLine
}

// Render produces the full block for one diagnostic against its document.
// Diagnostics pointing past the end of the file (stale positions) degrade to
// header and location only.
func Render(filename string, lines []string, d source.Diagnostic) string {
	var b strings.Builder
	b.WriteString(RenderHeader(d.Severity, d.Rule, d.Message))
	b.WriteString("\n")
	b.WriteString(RenderLocation(filename, d.Range.Start.Line+1, d.Range.Start.Column+1))

	if d.Range.Start.Line >= 0 && d.Range.Start.Line < len(lines) {
		length := 1
		if d.Range.End.Line == d.Range.Start.Line && d.Range.End.Column > d.Range.Start.Column {
			length = d.Range.End.Column - d.Range.Start.Column
		}
		b.WriteString("\n")
		b.WriteString(RenderSnippet(lines[d.Range.Start.Line], d.Range.Start.Line+1, d.Range.Start.Column+1, length, d.Severity))
	}
	return b.String()
}
