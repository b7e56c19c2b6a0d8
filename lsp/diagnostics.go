package lsp

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/arith/calc"
)

const diagnosticSource = "arith"

// Diagnostics runs every statement line of text and reports the lines that
// fail. Blank lines and '#' comments are ignored.
func Diagnostics(text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, line := range splitLines(text) {
		if calc.Skip(line) {
			continue
		}
		_, err := calc.Run(line)
		if err == nil {
			continue
		}
		start, end := calc.Span(line, err)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(i), Character: column(line, start)},
				End:   protocol.Position{Line: protocol.UInteger(i), Character: column(line, end)},
			},
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   stringPtr(diagnosticSource),
			Message:  err.Error(),
		})
	}
	return diagnostics
}

// Hover describes the statement on the given zero-based line. It returns
// nil for lines without a statement.
func Hover(text string, line int) *protocol.Hover {
	lines := splitLines(text)
	if line < 0 || line >= len(lines) || calc.Skip(lines[line]) {
		return nil
	}
	src := lines[line]

	var value string
	res, err := calc.Run(src)
	if err != nil {
		value = fmt.Sprintf("**%s error**: %v", calc.StageOf(err), err)
	} else {
		value = fmt.Sprintf("```\n%s\n```\n\n= `%s`", res.Trace, formatValue(res.Value))
	}

	first := len(src) - len(strings.TrimLeftFunc(src, unicode.IsSpace))
	last := len(strings.TrimRightFunc(src, unicode.IsSpace))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line), Character: column(src, first)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: column(src, last)},
		},
	}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// column converts a byte offset in line to a UTF-16 code unit offset, the
// unit LSP positions are counted in. Offsets past the end are clamped.
func column(line string, offset int) protocol.UInteger {
	if offset > len(line) {
		offset = len(line)
	}
	n := 0
	for _, r := range line[:offset] {
		if r == utf8.RuneError {
			n++
			continue
		}
		n += utf16.RuneLen(r)
	}
	return protocol.UInteger(n)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func stringPtr(s string) *string {
	return &s
}
