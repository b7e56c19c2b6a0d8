package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/arith/eval"
	"github.com/dhamidi/arith/parser"
)

func mustParse(t *testing.T, input string) *parser.Statement {
	t.Helper()
	stmt, err := parser.ParseString(input)
	require.NoError(t, err, "ParseString(%q)", input)
	return stmt
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		require.NotNil(t, enc, name)
	}

	_, err := New("yaml", &bytes.Buffer{})
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	want := []string{"dot", "dump", "json", "pretty", "trace"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTraceEncoder(&buf).Encode(mustParse(t, "2+3*4;")))
	require.Equal(t, "(S (E (T (F (N 2))) + (T (F (N 3)) * (F (N 4)))))\n", buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(mustParse(t, "7;")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "Statement", got["kind"])
	require.Contains(t, buf.String(), "\n  ")
}

func TestDotEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDotEncoder(&buf).Encode(mustParse(t, "1-2;")))

	want := `digraph ast {
  node [shape=box];
  n0 [label="Statement"];
  n1 [label="Expression"];
  n2 [label="Term"];
  n3 [label="Factor"];
  n4 [label="Number 1"];
  n3 -> n4;
  n2 -> n3;
  n1 -> n2;
  n5 [label="Term"];
  n6 [label="Factor"];
  n7 [label="Number 2"];
  n6 -> n7;
  n5 -> n6;
  n1 -> n5 [label="-"];
  n0 -> n1;
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("dot output mismatch (-want +got):\n%s", diff)
	}
}

func TestDotEncoderNodeCount(t *testing.T) {
	stmt := mustParse(t, "(1+2)*3/4;")

	count := 0
	parser.Walk(stmt, func(parser.Node) bool {
		count++
		return true
	})

	var buf bytes.Buffer
	require.NoError(t, NewDotEncoder(&buf).Encode(stmt))
	nodes := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "[label=") && !strings.Contains(line, "->") {
			nodes++
		}
	}
	require.Equal(t, count, nodes)
}

func TestDumpEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDumpEncoder(&buf).Encode(mustParse(t, "42;")))

	out := buf.String()
	require.Contains(t, out, "parser.Statement")
	require.Contains(t, out, "Value: (uint32) 42")
	require.NotContains(t, out, "0xc0")
}

func TestPretty(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4;", "2+3*4;"},
		{"  -(0002+3)*4;\n", "-(2+3)*4;"},
		{"+7;", "+7;"},
		{"((1));", "((1));"},
		{"0042/2;", "42/2;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewPrettyEncoder(&buf).Encode(mustParse(t, tt.input)))
			require.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestPrettyReparses(t *testing.T) {
	inputs := []string{
		"2+3*4;",
		"(2+3)*4;",
		"10-2-3;",
		"8/4/2;",
		"-(7-2)*3/4+1;",
		"-2+3;",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			stmt := mustParse(t, input)
			want, err := eval.Evaluate(stmt)
			require.NoError(t, err)

			again := mustParse(t, Pretty(stmt))
			got, err := eval.Evaluate(again)
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Equal(t, eval.Show(stmt), eval.Show(again))
		})
	}
}

func TestEncodeWithoutStatement(t *testing.T) {
	for _, name := range Names() {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err)
		_, err = enc.MarshalText()
		require.Error(t, err, name)
	}
}
