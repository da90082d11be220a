package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mvidal/strata/pkg/pipeline"
	"github.com/mvidal/strata/pkg/store"
)

func newTestServer() *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	return New(pipeline.NewRunner(nil, logger), store.NewMemoryStore(), logger)
}

const chainBody = `{
  "name": "chain",
  "relations": [
    {"left": "A", "right": "B"},
    {"left": "B", "right": "C"}
  ]
}`

func TestHealth(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestClassify(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader(chainBody))
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}

	var resp classifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := [][]string{{"A"}, {"B"}, {"C"}}
	if !reflect.DeepEqual(resp.Layering.Layers, want) {
		t.Errorf("Layers = %v, want %v", resp.Layering.Layers, want)
	}
	if resp.Name != "chain" {
		t.Errorf("Name = %q, want chain", resp.Name)
	}
}

func TestClassifyRejectsBadBody(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{nope`},
		{"empty endpoint", `{"relations": [{"left": "", "right": "b"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader(tt.body))
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
				t.Errorf("expected error body, got %s", rec.Body)
			}
		})
	}
}

func TestClassificationLifecycle(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	// Create
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classifications", strings.NewReader(chainBody))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}

	var created store.Classification
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created document has no ID")
	}

	// Get
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/classifications/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var fetched store.Classification
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode fetched: %v", err)
	}
	if !reflect.DeepEqual(fetched.Layers, created.Layers) {
		t.Errorf("fetched layers %v != created layers %v", fetched.Layers, created.Layers)
	}

	// List
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/classifications", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listed []store.Classification
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("list = %v, want the created document", listed)
	}
}

func TestGetClassificationNotFound(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/classifications/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
