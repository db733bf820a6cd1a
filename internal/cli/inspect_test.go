package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/casegraph/pkg/graph"
)

func TestSummarize(t *testing.T) {
	s := summarize(sampleGraph(t))

	if s.nodes != 4 || s.links != 3 {
		t.Errorf("nodes, links = %d, %d", s.nodes, s.links)
	}
	if s.first != "2020-03-01" || s.last != "2020-03-09" || s.days != 9 {
		t.Errorf("dates = %s..%s (%d days)", s.first, s.last, s.days)
	}
	if s.perCategory["family"] != 2 || s.perCategory["work"] != 1 {
		t.Errorf("perCategory = %v", s.perCategory)
	}
	if s.minOrd != 0 || s.maxOrd != 1 {
		t.Errorf("day order = %v..%v", s.minOrd, s.maxOrd)
	}
	if s.undated != 0 || s.unresolved != 0 {
		t.Errorf("undated, unresolved = %d, %d", s.undated, s.unresolved)
	}
}

func TestSummarizeDegraded(t *testing.T) {
	g, err := graph.ReadGraph(strings.NewReader(`{
		"nodes": [{"id": "a", "dayOrder": 2}, {"id": "b", "date": "2021-01-05", "dayOrder": -1}],
		"links": [{"source": "a", "target": "ghost", "type": "x"}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	s := summarize(g)
	if s.undated != 1 {
		t.Errorf("undated = %d, want 1", s.undated)
	}
	if s.unresolved != 1 {
		t.Errorf("unresolved = %d, want 1", s.unresolved)
	}
	if s.days != 1 || s.first != "2021-01-05" {
		t.Errorf("dates = %s (%d days)", s.first, s.days)
	}
	if s.minOrd != -1 || s.maxOrd != 2 {
		t.Errorf("day order = %v..%v", s.minOrd, s.maxOrd)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(&graph.Graph{})
	if s.nodes != 0 || s.first != "" || s.days != 0 {
		t.Errorf("summary = %+v", s)
	}
}
