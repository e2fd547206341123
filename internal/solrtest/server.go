// Package solrtest provides an in-memory single-node fake of the Solr
// HTTP API for tests and examples. It speaks the same envelopes as a
// real node: "error" objects with code and msg, a "success" object on
// CREATE, responseHeader plus response.docs on select.
package solrtest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type collection struct {
	fields []map[string]any
	docs   []map[string]any
}

// Server is a fake Solr node. The zero value is not usable; create one
// with New. Safe for concurrent requests.
type Server struct {
	mu          sync.Mutex
	collections map[string]*collection
	router      chi.Router
}

// New returns an empty fake node.
func New() *Server {
	s := &Server{collections: map[string]*collection{}}

	r := chi.NewRouter()
	r.Use(jsonRecoverer)
	r.Route("/solr", func(r chi.Router) {
		r.Get("/admin/collections", s.handleAdmin)
		r.Get("/admin/info/system", s.handleSystemInfo)
		r.Post("/{collection}/update", s.handleUpdate)
		r.Get("/{collection}/select", s.handleSelect)
		r.Get("/{collection}/schema", s.handleSchemaGet)
		r.Post("/{collection}/schema", s.handleSchemaPost)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Docs returns a copy of the documents stored in a collection, in
// insertion order. Test helper, not part of the Solr surface.
func (s *Server) Docs(name string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		return nil
	}
	out := make([]map[string]any, len(col.docs))
	copy(out, col.docs)
	return out
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	switch action {
	case "LIST":
		s.handleList(w)
	case "CREATE":
		s.handleCreate(w, r)
	case "DELETE":
		s.handleDelete(w, r)
	case "CLUSTERSTATUS":
		s.handleClusterStatus(w)
	default:
		writeError(w, http.StatusBadRequest, "unknown action: "+action)
	}
}

func (s *Server) handleList(w http.ResponseWriter) {
	s.mu.Lock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	s.mu.Unlock()
	sort.Strings(names)

	writeOK(w, map[string]any{"collections": names})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "collection name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.collections[name]; exists {
		writeError(w, http.StatusBadRequest, "collection already exists: "+name)
		return
	}
	s.collections[name] = &collection{
		fields: []map[string]any{{"name": "id", "type": "string"}},
	}

	writeOK(w, map[string]any{
		"success": map[string]any{
			"localhost:8983_solr": map[string]any{
				"responseHeader": map[string]any{"status": 0},
				"core":           name + "_shard1_replica_n1",
			},
		},
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "collection name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.collections[name]; !exists {
		writeError(w, http.StatusBadRequest, "no such collection: "+name)
		return
	}
	delete(s.collections, name)
	writeOK(w, nil)
}

func (s *Server) handleClusterStatus(w http.ResponseWriter) {
	s.mu.Lock()
	cols := map[string]any{}
	for name := range s.collections {
		cols[name] = map[string]any{
			"health": "GREEN",
			"shards": map[string]any{
				"shard1": map[string]any{
					"state": "active",
					"replicas": map[string]any{
						"core_node1": map[string]any{
							"state":     "active",
							"node_name": "localhost:8983_solr",
							"base_url":  "http://localhost:8983/solr",
							"leader":    "true",
						},
					},
				},
			},
		}
	}
	s.mu.Unlock()

	writeOK(w, map[string]any{"cluster": map[string]any{"collections": cols}})
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, map[string]any{
		"mode":      "solrcloud",
		"solr_home": "/var/solr",
		"lucene": map[string]any{
			"solr-spec-version":   "8.5.1",
			"lucene-spec-version": "8.5.1",
		},
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	var docs []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, "no such collection: "+name)
		return
	}
	col.docs = append(col.docs, docs...)
	writeOK(w, nil)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	params := r.URL.Query()

	q := params.Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	s.mu.Lock()
	col, ok := s.collections[name]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "no such collection: "+name)
		return
	}
	matched := filterDocs(col.docs, q)
	s.mu.Unlock()

	numFound := len(matched)
	start := atoiDefault(params.Get("start"), 0)
	if start > len(matched) {
		start = len(matched)
	}
	matched = matched[start:]
	if rows := atoiDefault(params.Get("rows"), len(matched)); rows < len(matched) {
		matched = matched[:rows]
	}

	writeOK(w, map[string]any{
		"response": map[string]any{
			"numFound": numFound,
			"start":    start,
			"docs":     matched,
		},
	})
}

// filterDocs supports the match-all query and plain field:value terms.
// Anything more elaborate (boolean groups, ranges) matches everything;
// the fake does not reimplement Lucene.
func filterDocs(docs []map[string]any, q string) []map[string]any {
	if q == "*:*" {
		return docs
	}
	field, value, ok := strings.Cut(q, ":")
	if !ok || strings.ContainsAny(q, "() ") {
		return docs
	}
	var out []map[string]any
	for _, doc := range docs {
		if raw, present := doc[field]; present && stringify(raw) == value {
			out = append(out, doc)
		}
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}

func (s *Server) handleSchemaGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, "no such collection: "+name)
		return
	}
	writeOK(w, map[string]any{
		"schema": map[string]any{
			"name":      "default-config",
			"version":   1.6,
			"uniqueKey": "id",
			"fields":    col.fields,
		},
	})
}

func (s *Server) handleSchemaPost(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid schema body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, "no such collection: "+name)
		return
	}

	for _, f := range descriptorList(body["add-field"]) {
		fname, _ := f["name"].(string)
		if fname == "" || col.fieldIndex(fname) >= 0 {
			writeError(w, http.StatusBadRequest, "cannot add field "+fname)
			return
		}
		col.fields = append(col.fields, f)
	}
	for _, f := range descriptorList(body["delete-field"]) {
		fname, _ := f["name"].(string)
		i := col.fieldIndex(fname)
		if i < 0 {
			writeError(w, http.StatusBadRequest, "cannot delete unknown field "+fname)
			return
		}
		col.fields = append(col.fields[:i], col.fields[i+1:]...)
	}
	for _, f := range descriptorList(body["replace-field"]) {
		fname, _ := f["name"].(string)
		i := col.fieldIndex(fname)
		if i < 0 {
			writeError(w, http.StatusBadRequest, "cannot replace unknown field "+fname)
			return
		}
		col.fields[i] = f
	}
	writeOK(w, nil)
}

func (c *collection) fieldIndex(name string) int {
	for i, f := range c.fields {
		if f["name"] == name {
			return i
		}
	}
	return -1
}

// descriptorList accepts the single-object and array forms the schema
// endpoint allows.
func descriptorList(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		var out []map[string]any
		for _, el := range t {
			if f, ok := el.(map[string]any); ok {
				out = append(out, f)
			}
		}
		return out
	default:
		return nil
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func writeOK(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{
		"responseHeader": map[string]any{"status": 0, "QTime": 0},
	}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"responseHeader": map[string]any{"status": code, "QTime": 0},
		"error":          map[string]any{"code": code, "msg": msg},
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// jsonRecoverer turns a handler panic into a Solr-shaped error envelope
// instead of a plain text stacktrace.
func jsonRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
