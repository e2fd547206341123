package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func testEndpoint(t *testing.T, srv *httptest.Server) Endpoint {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse test server port: %v", err)
	}
	return Endpoint{Protocol: u.Scheme, Host: u.Hostname(), Port: port}
}

func TestEndpoint_URL(t *testing.T) {
	e := Endpoint{Protocol: "http", Host: "localhost", Port: 8983}
	got := e.URL("admin/collections?action=LIST")
	want := "http://localhost:8983/solr/admin/collections?action=LIST"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/solr/admin/info/system" {
			t.Errorf("path = %q, want /solr/admin/info/system", r.URL.Path)
		}
		w.Write([]byte(`{"responseHeader":{"status":0},"mode":"std"}`))
	}))
	defer srv.Close()

	c := New(testEndpoint(t, srv), nil)
	body, err := c.Get(context.Background(), "admin/info/system?wt=json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["mode"] != "std" {
		t.Errorf("mode = %v, want std", body["mode"])
	}
}

func TestClient_Post_Body(t *testing.T) {
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		w.Write([]byte(`{"responseHeader":{"status":0}}`))
	}))
	defer srv.Close()

	c := New(testEndpoint(t, srv), nil)
	docs := []map[string]any{{"id": "1"}, {"id": "2"}}
	if _, err := c.Post(context.Background(), "users/update?commit=true", docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("server received %d docs, want 2", len(got))
	}
}

func TestClient_ErrorKey(t *testing.T) {
	// Status is 200, but the body carries an error envelope.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"msg":"undefined field foo"}}`))
	}))
	defer srv.Close()

	c := New(testEndpoint(t, srv), nil)
	_, err := c.Get(context.Background(), "users/select?q=foo")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if !strings.Contains(err.Error(), "undefined field foo") {
		t.Errorf("error should carry the server message, got %q", err)
	}
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"responseHeader":{"status":500}}`))
	}))
	defer srv.Close()

	c := New(testEndpoint(t, srv), nil)
	_, err := c.Get(context.Background(), "admin/collections?action=LIST")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := New(testEndpoint(t, srv), nil)
	_, err := c.Get(context.Background(), "admin/info/system")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ep := testEndpoint(t, srv)
	srv.Close() // nothing is listening anymore

	c := New(ep, nil)
	_, err := c.Get(context.Background(), "admin/info/system")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(testEndpoint(t, srv), nil)
	_, err := c.Get(ctx, "admin/info/system")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &Error{Op: "GET users/select", Err: inner}
	if !errors.Is(e, inner) {
		t.Error("Unwrap chain broken")
	}
	if got := e.Error(); !strings.Contains(got, "GET users/select") {
		t.Errorf("Error() = %q, should contain the op", got)
	}
}
