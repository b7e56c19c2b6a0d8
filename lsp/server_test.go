package lsp

import (
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnostics(t *testing.T) {
	text := strings.Join([]string{
		"2+3*4;",
		"# a comment",
		"",
		"  2+#;",
		"(2+3",
		"1/0;",
		"10-2-3;\r",
	}, "\n")

	got := Diagnostics(text)
	if len(got) != 3 {
		t.Fatalf("len(Diagnostics) = %d, want 3: %+v", len(got), got)
	}

	tests := []struct {
		line       protocol.UInteger
		start, end protocol.UInteger
		contains   string
	}{
		{3, 4, 5, "unexpected character"},
		{4, 4, 4, "expected ')'"},
		{5, 0, 4, "division by zero"},
	}

	for i, tt := range tests {
		d := got[i]
		if d.Range.Start.Line != tt.line || d.Range.End.Line != tt.line {
			t.Errorf("diagnostic %d line = %d..%d, want %d", i, d.Range.Start.Line, d.Range.End.Line, tt.line)
		}
		if d.Range.Start.Character != tt.start || d.Range.End.Character != tt.end {
			t.Errorf("diagnostic %d range = %d..%d, want %d..%d", i,
				d.Range.Start.Character, d.Range.End.Character, tt.start, tt.end)
		}
		if !strings.Contains(d.Message, tt.contains) {
			t.Errorf("diagnostic %d Message = %q, want it to contain %q", i, d.Message, tt.contains)
		}
		if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
			t.Errorf("diagnostic %d Severity = %v, want Error", i, d.Severity)
		}
		if d.Source == nil || *d.Source != "arith" {
			t.Errorf("diagnostic %d Source = %v, want arith", i, d.Source)
		}
	}
}

func TestDiagnosticsEmpty(t *testing.T) {
	got := Diagnostics("1;\n2;\n")
	if got == nil || len(got) != 0 {
		t.Errorf("Diagnostics = %#v, want empty non-nil slice", got)
	}
}

func TestColumnCountsUTF16(t *testing.T) {
	tests := []struct {
		line   string
		offset int
		want   protocol.UInteger
	}{
		{"abc", 2, 2},
		{"é1", 2, 1},
		{"😀;", 4, 2},
		{"ab", 10, 2},
	}

	for _, tt := range tests {
		if got := column(tt.line, tt.offset); got != tt.want {
			t.Errorf("column(%q, %d) = %d, want %d", tt.line, tt.offset, got, tt.want)
		}
	}
}

func TestHover(t *testing.T) {
	text := "2+3*4;\n# note\n1/0;\n"

	h := Hover(text, 0)
	if h == nil {
		t.Fatal("Hover(0) = nil")
	}
	content, ok := h.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("Contents = %T, want MarkupContent", h.Contents)
	}
	if content.Kind != protocol.MarkupKindMarkdown {
		t.Errorf("Kind = %v, want markdown", content.Kind)
	}
	if !strings.Contains(content.Value, "(S (E") || !strings.Contains(content.Value, "= `14`") {
		t.Errorf("Value = %q, want trace and value", content.Value)
	}
	if h.Range == nil || h.Range.End.Character != 6 {
		t.Errorf("Range = %+v, want end at 6", h.Range)
	}

	if h := Hover(text, 1); h != nil {
		t.Errorf("Hover(comment) = %+v, want nil", h)
	}
	if h := Hover(text, 42); h != nil {
		t.Errorf("Hover(out of range) = %+v, want nil", h)
	}

	h = Hover(text, 2)
	if h == nil {
		t.Fatal("Hover(2) = nil")
	}
	if v := h.Contents.(protocol.MarkupContent).Value; !strings.Contains(v, "eval error") {
		t.Errorf("Value = %q, want eval error", v)
	}
}

func TestDiagnosticsWideCharacter(t *testing.T) {
	got := Diagnostics("2*😀;")
	if len(got) != 1 {
		t.Fatalf("len(Diagnostics) = %d, want 1", len(got))
	}
	r := got[0].Range
	if r.Start.Character != 2 || r.End.Character != 4 {
		t.Errorf("range = %d..%d, want 2..4", r.Start.Character, r.End.Character)
	}
}

func TestHoverRangeTrimsUnicodeSpace(t *testing.T) {
	h := Hover("\v1+1;\u00a0", 0)
	if h == nil || h.Range == nil {
		t.Fatal("Hover = nil, want a range")
	}
	if h.Range.Start.Character != 1 || h.Range.End.Character != 5 {
		t.Errorf("range = %d..%d, want 1..5", h.Range.Start.Character, h.Range.End.Character)
	}
	if v := h.Contents.(protocol.MarkupContent).Value; !strings.Contains(v, "= `2`") {
		t.Errorf("Value = %q, want value 2", v)
	}
}

type notification struct {
	method string
	params any
}

func testContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*sent = append(*sent, notification{method: method, params: params})
		},
	}
}

func TestDocumentLifecycle(t *testing.T) {
	ls := NewServer("test")
	var sent []notification
	ctx := testContext(&sent)
	uri := "file:///tmp/calc.txt"

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "1/0;\n"},
	})
	if err != nil {
		t.Fatalf("didOpen error = %v", err)
	}
	if len(sent) != 1 || sent[0].method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("notifications = %+v, want one publishDiagnostics", sent)
	}
	if params := sent[0].params.(protocol.PublishDiagnosticsParams); len(params.Diagnostics) != 1 {
		t.Errorf("diagnostics = %+v, want 1", params.Diagnostics)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "4/2;\n"}},
	})
	if err != nil {
		t.Fatalf("didChange error = %v", err)
	}
	if params := sent[1].params.(protocol.PublishDiagnosticsParams); len(params.Diagnostics) != 0 {
		t.Errorf("diagnostics after fix = %+v, want none", params.Diagnostics)
	}

	hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 1},
		},
	})
	if err != nil || hover == nil {
		t.Fatalf("hover = %v, %v", hover, err)
	}
	if v := hover.Contents.(protocol.MarkupContent).Value; !strings.Contains(v, "= `2`") {
		t.Errorf("hover = %q, want value 2", v)
	}

	err = ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("didClose error = %v", err)
	}
	if _, ok := ls.document(uri); ok {
		t.Error("document still stored after close")
	}

	hover, _ = ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	if hover != nil {
		t.Errorf("hover after close = %+v, want nil", hover)
	}
}
