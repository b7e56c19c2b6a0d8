package ui

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/arith/batch"
)

func newTestServer(t *testing.T) (*Server, *batch.Runner) {
	t.Helper()
	runner := batch.New(2)
	t.Cleanup(runner.Close)
	s, err := NewServer(runner)
	require.NoError(t, err)
	return s, runner
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `action="/eval"`)
	require.Contains(t, rec.Body.String(), `action="/batches"`)
}

func TestUnknownPath(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatic(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "body")
}

func postJSON(s http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestEvalJSON(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(s, "/eval", `{"expr": "(2+3)*4;"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Value float64 `json:"value"`
		Trace string  `json:"trace"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 20.0, resp.Value)
	require.True(t, strings.HasPrefix(resp.Trace, "(S "))
}

// overflowExpr multiplies past the largest float64.
var overflowExpr = strings.Repeat("4294967295*", 40) + "1;"

func TestEvalJSONErrors(t *testing.T) {
	tests := []struct {
		expr  string
		stage string
	}{
		{"1/0;", "eval"},
		{"2+;", "parse"},
		{"2+#;", "lex"},
		{overflowExpr, "eval"},
		{"(" + strings.TrimSuffix(overflowExpr, ";") + ")-(" + strings.TrimSuffix(overflowExpr, ";") + ");", "eval"},
	}

	s, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{"expr": tt.expr})
			rec := postJSON(s, "/eval", string(body))
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tt.stage, resp["stage"])
			require.NotEmpty(t, resp["error"])
			require.NotContains(t, resp, "value")
		})
	}
}

func TestEvalZeroValueIsPresent(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(s, "/eval", `{"expr": "1-1;"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0.0, resp["value"])
}

func TestEvalBadJSON(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(s, "/eval", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvalForm(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{"expr": {"2+3*4;"}}
	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "= 14")
}

func TestEvalFormError(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{"expr": {"1/0;"}}
	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "division by zero")
}

func TestBatchJSON(t *testing.T) {
	s, runner := newTestServer(t)

	rec := postJSON(s, "/batches", `{"lines": ["2+3*4;", "# skip", "1/0;"]}`)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/batches/"), "Location = %q", loc)
	id := strings.TrimPrefix(loc, "/batches/")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := runner.Wait(ctx, id)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, loc, nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res batch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, batch.StatusCompleted, res.Status)
	require.Len(t, res.Lines, 2)
	require.Equal(t, 14.0, res.Lines[0].Value)
	require.Equal(t, 3, res.Lines[1].Line)
	require.NotEmpty(t, res.Lines[1].Error)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Batch #"+id)
}

func TestBatchJSONOverflowLine(t *testing.T) {
	s, runner := newTestServer(t)

	id := runner.Submit(batch.Request{Lines: []string{"1+1;", overflowExpr}})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := runner.Wait(ctx, id)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/batches/"+id, nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res batch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Lines, 2)
	require.Equal(t, 2.0, res.Lines[0].Value)
	require.Equal(t, "eval", string(res.Lines[1].Stage))
	require.Contains(t, res.Lines[1].Error, "out of range")
}

func TestWriteJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"value": math.Inf(1)})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBatchForm(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{"lines": {"1+1;\r\n2*2;\r\n"}}
	req := httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestBatchEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(s, "/batches", `{"lines": ["", "# nothing"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/batches/999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
