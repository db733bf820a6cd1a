package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/casegraph/pkg/cache"
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/observability"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := &server{
		graph:    sampleGraph(t),
		hash:     cache.Hash([]byte(sampleJSON)),
		cfg:      defaultFileConfig(),
		cache:    cache.NewNullCache(),
		logger:   discardLogger(),
		registry: prometheus.NewRegistry(),
	}
	newPromMetrics(s.registry).install()
	t.Cleanup(observability.Reset)

	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestServeRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/timeline.svg", http.StatusOK, `id="arrow-family"`},
		{"/timeline.svg?lang=ro", http.StatusOK, "Cazuri ordonate pe zi"},
		{"/timeline.svg?width=800&height=400", http.StatusOK, `viewBox="0 0 800 400"`},
		{"/timeline.svg?lang=romanian", http.StatusBadRequest, "language"},
		{"/timeline.svg?width=wide", http.StatusBadRequest, "width"},
		{"/timeline.svg?width=NaN", http.StatusBadRequest, "not finite"},
		{"/nodelink.svg?height=Inf", http.StatusBadRequest, "not finite"},
		{"/timeline.svg?from=2020-03-09&to=2020-03-01", http.StatusBadRequest, "before"},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, ts, tt.path)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (body %q)", status, tt.status, body)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestServeGraphWindow(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/graph.json?from=2020-03-03")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	g, err := graph.ReadGraph(strings.NewReader(body))
	if err != nil {
		t.Fatalf("response is not a graph: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Links) != 1 {
		t.Errorf("links = %d, want 1 (only 2->4 has both ends in the window)", len(g.Links))
	}
}

func TestServeMetrics(t *testing.T) {
	ts := newTestServer(t)

	get(t, ts, "/timeline.svg")
	get(t, ts, "/healthz")

	status, body := get(t, ts, "/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{
		`casegraph_http_requests_total{method="GET",route="/timeline.svg",status="200"} 1`,
		`casegraph_http_requests_total{method="GET",route="/healthz",status="200"} 1`,
		"casegraph_chart_updates_total 1",
		"casegraph_chart_nodes 4",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}
