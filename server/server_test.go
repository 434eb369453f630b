package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/recording"
)

const cylinderDoc = `
shape: cylinder
parameters: {radius: 10, height: 20}
datums: [{label: A, attach_to: nowhere}]
`

func newTestServer(t *testing.T) (*gin.Engine, *Metrics) {
	t.Helper()
	s := config.DefaultSettings()
	s.Server.Mode = gin.TestMode
	m := NewMetrics(nil)
	return New(s, WithMetrics(m)), m
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDrawBackends(t *testing.T) {
	r, m := newTestServer(t)
	tests := []struct {
		backend   string
		mediaType string
		prefix    []byte
	}{
		{"lisp", "text/plain; charset=utf-8", []byte("(defun C:DrawMyObject")},
		{"svg", "image/svg+xml", []byte("<svg")},
		{"raster", "image/png", []byte("\x89PNG")},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			w := do(r, http.MethodPost, "/v1/drawings/"+tt.backend, cylinderDoc)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != tt.mediaType {
				t.Errorf("Content-Type = %q, want %q", got, tt.mediaType)
			}
			if !bytes.Contains(w.Body.Bytes()[:min(w.Body.Len(), 512)], tt.prefix) {
				t.Errorf("body does not start with %q", tt.prefix)
			}
		})
	}

	if got := testutil.ToFloat64(m.Generations.WithLabelValues("cylinder", "ok")); got != 3 {
		t.Errorf("draft_generations_total{cylinder,ok} = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.DroppedAnnotations.WithLabelValues("cylinder", "datum")); got != 3 {
		t.Errorf("draft_dropped_annotations_total = %v, want 3", got)
	}
}

func TestDrawJSONBody(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, http.MethodPost, "/v1/drawings/svg", `{"shape": "cuboid", "parameters": {"length": 30, "width": 20, "height": 10}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestDrawErrors(t *testing.T) {
	r, m := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
		field  string
	}{
		{"unknown backend", "/v1/drawings/dxf", cylinderDoc, http.StatusNotFound, "", ""},
		{"missing field", "/v1/drawings/lisp", "shape: cylinder\nparameters: {height: 2}", http.StatusBadRequest, "cylinder", "radius"},
		{"unknown shape", "/v1/drawings/lisp", "shape: torus", http.StatusBadRequest, "", "shape"},
		{"mismatch", "/v1/drawings/lisp", `
shape: screw_nut_assembly
components:
  screw: {parameters: {head_width: 13, head_height: 5, shaft_diameter: 8, shaft_length: 40}}
  nut: {parameters: {width: 13, height: 6, hole_diameter: 10}}
`, http.StatusBadRequest, "screw_nut_assembly", "screw.shaft_diameter"},
		{"syntax", "/v1/drawings/lisp", "shape: [", http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			var body errorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Error == "" || body.Kind != tt.kind || body.Field != tt.field {
				t.Errorf("body = %+v, want kind %q field %q", body, tt.kind, tt.field)
			}
		})
	}
	if got := testutil.ToFloat64(m.Generations.WithLabelValues("cylinder", "invalid")); got != 1 {
		t.Errorf("draft_generations_total{cylinder,invalid} = %v, want 1", got)
	}
}

func TestDrawBodyLimit(t *testing.T) {
	s := config.DefaultSettings()
	s.Server.Mode = gin.TestMode
	s.Server.MaxBodyBytes = 16
	r := New(s)
	if w := do(r, http.MethodPost, "/v1/drawings/lisp", cylinderDoc); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q", w.Code, w.Body.String())
	}
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("%s = %q, want a uuid", RequestIDHeader, w.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/drawings/nope", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("%s = %q, want the client id kept", RequestIDHeader, got)
	}
}

func TestListings(t *testing.T) {
	r, _ := newTestServer(t)

	var listing struct{ Backends []recording.Format }
	w := do(r, http.MethodGet, "/v1/backends", "")
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"lisp": ".lsp", "raster": ".png", "svg": ".svg"}
	for _, f := range listing.Backends {
		if ext, ok := want[f.Name]; ok {
			if f.Extension != ext || f.MediaType == "" {
				t.Errorf("backend %s = %+v", f.Name, f)
			}
			delete(want, f.Name)
		}
	}
	if len(want) != 0 {
		t.Errorf("backends = %+v, missing %v", listing.Backends, want)
	}

	var shapes struct{ Shapes []shapeInfo }
	w = do(r, http.MethodGet, "/v1/shapes", "")
	if err := json.Unmarshal(w.Body.Bytes(), &shapes); err != nil {
		t.Fatal(err)
	}
	if len(shapes.Shapes) != 9 {
		t.Errorf("len(shapes) = %d, want 9", len(shapes.Shapes))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	do(r, http.MethodPost, "/v1/drawings/lisp", cylinderDoc)

	w := do(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", w.Code)
	}
	for _, name := range []string{"draft_generations_total", "draft_generation_duration_seconds", "draft_commands_emitted"} {
		if !strings.Contains(w.Body.String(), name) {
			t.Errorf("/metrics does not expose %s", name)
		}
	}
}
