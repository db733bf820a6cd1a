package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/casegraph/pkg/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantLinks int
		wantCode  errors.Code
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:  "Empty",
			input: `{"nodes": [], "links": []}`,
		},
		{
			name: "NumericIDs",
			input: `{
				"nodes": [
					{"id": 1, "date": "2020-03-01", "dayOrder": 0, "r": 4},
					{"id": 2, "date": "2020-03-04", "dayOrder": 2, "r": 6}
				],
				"links": [{"source": 1, "target": 2, "type": "family"}]
			}`,
			wantNodes: 2,
			wantLinks: 1,
			check: func(t *testing.T, g *Graph) {
				if g.Nodes[0].ID != "1" {
					t.Errorf("ID = %q, want 1", g.Nodes[0].ID)
				}
				if !g.Nodes[1].Date.Equal(day(2020, 3, 4)) {
					t.Errorf("Date = %v, want 2020-03-04", g.Nodes[1].Date)
				}
				if g.Links[0].Source != "1" || g.Links[0].Type != "family" {
					t.Errorf("link = %+v", g.Links[0])
				}
			},
		},
		{
			name: "Properties",
			input: `{"nodes": [
				{"id": "a", "date": "2020-03-01T12:00:00Z", "dayOrder": 1, "r": 3,
				 "properties": {"case_no": 17, "source_no": "4"}}
			], "links": []}`,
			wantNodes: 1,
			check: func(t *testing.T, g *Graph) {
				p := g.Nodes[0].Properties
				if p == nil || p.CaseNo != "17" || p.SourceNo != "4" {
					t.Errorf("Properties = %+v", p)
				}
				if g.Nodes[0].Date.Hour() != 12 {
					t.Errorf("Date = %v, want noon", g.Nodes[0].Date)
				}
			},
		},
		{
			name:      "MissingDateKept",
			input:     `{"nodes": [{"id": "a", "dayOrder": 0, "r": 1}], "links": []}`,
			wantNodes: 1,
			check: func(t *testing.T, g *Graph) {
				if g.Nodes[0].HasDate() {
					t.Error("HasDate() = true, want false")
				}
			},
		},
		{
			name:      "UnknownEndpointKept",
			input:     `{"nodes": [{"id": "a", "date": "2020-03-01"}], "links": [{"source": "a", "target": "zz", "type": "t"}]}`,
			wantNodes: 1,
			wantLinks: 1,
		},
		{
			name:     "DuplicateID",
			input:    `{"nodes": [{"id": "a"}, {"id": "a"}], "links": []}`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "BadDate",
			input:    `{"nodes": [{"id": "a", "date": "March"}], "links": []}`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "BadKey",
			input:    `{"nodes": [{"id": true}], "links": []}`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input))
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ReadGraph() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGraph() error = %v", err)
			}
			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", len(g.Nodes), tt.wantNodes)
			}
			if len(g.Links) != tt.wantLinks {
				t.Errorf("links = %d, want %d", len(g.Links), tt.wantLinks)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	orig := &Graph{
		Nodes: []*Node{
			{ID: "1", Date: day(2020, 3, 1), DayOrder: 0, R: 4, Source: "import",
				Properties: &Properties{CaseNo: "1"}},
			{ID: "2", Date: time.Date(2020, 3, 2, 8, 30, 0, 0, time.UTC), DayOrder: 1, R: 5},
		},
		Links: []Link{{Source: "1", Target: "2", Type: "family"}},
	}

	data, err := MarshalGraph(orig)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	got, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}

	if len(got.Nodes) != 2 || len(got.Links) != 1 {
		t.Fatalf("got %d nodes, %d links", len(got.Nodes), len(got.Links))
	}
	for i := range orig.Nodes {
		if !got.Nodes[i].Date.Equal(orig.Nodes[i].Date) {
			t.Errorf("node %d date = %v, want %v", i, got.Nodes[i].Date, orig.Nodes[i].Date)
		}
	}
	if got.Nodes[0].Properties == nil || got.Nodes[0].Properties.CaseNo != "1" {
		t.Errorf("properties lost: %+v", got.Nodes[0].Properties)
	}
}

func TestImportGraph(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(path, []byte(`{"nodes":[{"id":"a","date":"2020-01-01"}],"links":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := ImportGraph(path)
	if err != nil {
		t.Fatalf("ImportGraph() error = %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(g.Nodes))
	}

	_, err = ImportGraph(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportGraph(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestNewIndexSharesPointers(t *testing.T) {
	g := &Graph{Nodes: []*Node{{ID: "a"}, {ID: "b"}}}
	idx := NewIndex(g)
	if idx.Lookup("a") != g.Nodes[0] {
		t.Error("index must hold the graph's own node pointers")
	}
	if idx.Lookup("zz") != nil {
		t.Error("Lookup(unknown) should be nil")
	}
}

func TestCategories(t *testing.T) {
	g := &Graph{Links: []Link{
		{Source: "a", Target: "b", Type: "work"},
		{Source: "a", Target: "c", Type: "family"},
		{Source: "b", Target: "c", Type: "work"},
	}}
	got := g.Categories()
	if len(got) != 2 || got[0] != "family" || got[1] != "work" {
		t.Errorf("Categories() = %v, want [family work]", got)
	}
}

func TestDateRange(t *testing.T) {
	g := &Graph{Nodes: []*Node{
		{ID: "a", Date: day(2020, 3, 5)},
		{ID: "b"},
		{ID: "c", Date: day(2020, 3, 1)},
	}}
	lo, hi, ok := g.DateRange()
	if !ok {
		t.Fatal("DateRange() ok = false")
	}
	if !lo.Equal(day(2020, 3, 1)) || !hi.Equal(day(2020, 3, 5)) {
		t.Errorf("DateRange() = %v..%v", lo, hi)
	}

	if _, _, ok := (&Graph{}).DateRange(); ok {
		t.Error("DateRange() on empty graph should report !ok")
	}
}

func TestFilterBetween(t *testing.T) {
	g := &Graph{
		Nodes: []*Node{
			{ID: "a", Date: day(2020, 3, 1)},
			{ID: "b", Date: day(2020, 3, 10)},
			{ID: "c", Date: day(2020, 3, 20)},
		},
		Links: []Link{
			{Source: "a", Target: "b", Type: "t"},
			{Source: "b", Target: "c", Type: "t"},
		},
	}

	sub := g.Filter(Between(day(2020, 3, 1), day(2020, 3, 15)))
	if len(sub.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(sub.Nodes))
	}
	if len(sub.Links) != 1 || sub.Links[0].Target != "b" {
		t.Errorf("links = %+v, want only a->b", sub.Links)
	}
	if sub.Nodes[0] != g.Nodes[0] {
		t.Error("Filter must share node pointers")
	}
}
