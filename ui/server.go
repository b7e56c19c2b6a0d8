package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/arith/batch"
	"github.com/dhamidi/arith/calc"
)

var log = commonlog.GetLogger("arith.ui")

//go:embed static templates
var embeddedFS embed.FS

type Server struct {
	runner     *batch.Runner
	staticFS   fs.FS
	templates  *template.Template
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(runner *batch.Runner) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"value": formatValue,
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
		"lineCount": func(lines []string) int {
			n := 0
			for _, l := range lines {
				if !calc.Skip(l) {
					n++
				}
			}
			return n
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		runner:     runner,
		staticFS:   staticFS,
		templates:  tmpl,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /eval", s.handleEval)
	s.mux.HandleFunc("POST /batches", s.handleSubmitBatch)
	s.mux.HandleFunc("GET /batches/{id}", s.handleGetBatch)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render re-reads the templates on every request so that files under
// ui/templates take effect without a restart. If that fails the templates
// parsed at startup are used.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		log.Warningf("reload templates: %v", err)
		tmpl = s.templates
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("encode response: %v", err)
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func isJSON(header string) bool {
	return strings.HasPrefix(header, "application/json")
}

type evalRequest struct {
	Expr string `json:"expr"`
}

type evalResponse struct {
	Expr  string     `json:"expr"`
	Value *float64   `json:"value,omitempty"`
	Trace string     `json:"trace,omitempty"`
	Error string     `json:"error,omitempty"`
	Stage calc.Stage `json:"stage,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	jsonRequest := isJSON(r.Header.Get("Content-Type"))
	if jsonRequest {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Expr = r.FormValue("expr")
	}

	resp := evalResponse{Expr: req.Expr}
	status := http.StatusOK

	res, err := calc.Run(req.Expr)
	if err != nil {
		resp.Error = err.Error()
		resp.Stage = calc.StageOf(err)
		status = http.StatusUnprocessableEntity
		log.Debugf("eval %q: %v", req.Expr, err)
	} else {
		resp.Value = &res.Value
		resp.Trace = res.Trace
	}

	if jsonRequest || isJSON(r.Header.Get("Accept")) {
		writeJSON(w, status, resp)
		return
	}

	data := struct {
		Eval *evalResponse
		Jobs []*batch.Result
	}{
		Eval: &resp,
		Jobs: s.runner.List(),
	}
	s.render(w, status, "index.html", data)
}

type batchRequest struct {
	Lines []string `json:"lines"`
}

func (s *Server) handleSubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if isJSON(r.Header.Get("Content-Type")) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		text := strings.ReplaceAll(r.FormValue("lines"), "\r\n", "\n")
		req.Lines = strings.Split(text, "\n")
	}

	empty := true
	for _, l := range req.Lines {
		if !calc.Skip(l) {
			empty = false
			break
		}
	}
	if empty {
		http.Error(w, "must provide at least one statement", http.StatusBadRequest)
		return
	}

	id := s.runner.Submit(batch.Request{Lines: req.Lines})
	log.Infof("submitted batch %s with %d lines", id, len(req.Lines))
	http.Redirect(w, r, "/batches/"+id, http.StatusSeeOther)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.runner.Get(id)
	if !ok {
		http.Error(w, "batch not found", http.StatusNotFound)
		return
	}

	if isJSON(r.Header.Get("Accept")) {
		writeJSON(w, http.StatusOK, result)
		return
	}

	s.render(w, http.StatusOK, "batch.html", result)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Eval *evalResponse
		Jobs []*batch.Result
	}{
		Jobs: s.runner.List(),
	}
	s.render(w, http.StatusOK, "index.html", data)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS serves files from primaryPath on disk when they exist and from
// secondary otherwise.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
