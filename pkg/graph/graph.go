package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"
	"time"

	"github.com/matzehuels/casegraph/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// ReadGraph decodes a JSON graph from an io.Reader.
// Use ImportGraph for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}
	seen := make(map[Key]struct{}, len(g.Nodes))
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
		nodes = append(nodes, n)
	}
	g.Nodes = nodes
	return &g, nil
}

// ImportGraph reads a JSON file at path and returns the decoded graph.
func ImportGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph writes g as indented JSON. The output decodes back with ReadGraph.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// MarshalGraph converts g to JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Queries
// =============================================================================

// NewIndex builds the id lookup for g. Later nodes win on duplicate ids,
// which ReadGraph already rejects.
func NewIndex(g *Graph) NodeIndex {
	idx := make(NodeIndex, len(g.Nodes))
	for _, n := range g.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// Categories returns the distinct link types of g in sorted order.
func (g *Graph) Categories() []Key {
	set := make(map[Key]struct{})
	for _, l := range g.Links {
		set[l.Type] = struct{}{}
	}
	out := make([]Key, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// DateRange returns the earliest and latest node dates. ok is false when no
// node has a date.
func (g *Graph) DateRange() (lo, hi time.Time, ok bool) {
	for _, n := range g.Nodes {
		if !n.HasDate() {
			continue
		}
		if !ok || n.Date.Before(lo) {
			lo = n.Date
		}
		if !ok || n.Date.After(hi) {
			hi = n.Date
		}
		ok = true
	}
	return lo, hi, ok
}

// Filter returns the subgraph of nodes accepted by keep and the links whose
// endpoints were both kept. Node pointers are shared with g.
func (g *Graph) Filter(keep func(*Node) bool) *Graph {
	out := &Graph{}
	kept := make(map[Key]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if keep(n) {
			out.Nodes = append(out.Nodes, n)
			kept[n.ID] = true
		}
	}
	for _, l := range g.Links {
		if kept[l.Source] && kept[l.Target] {
			out.Links = append(out.Links, l)
		}
	}
	return out
}

// Between returns a predicate for Filter accepting nodes dated within
// [from, to]. A zero bound is open.
func Between(from, to time.Time) func(*Node) bool {
	return func(n *Node) bool {
		if !n.HasDate() {
			return false
		}
		if !from.IsZero() && n.Date.Before(from) {
			return false
		}
		if !to.IsZero() && n.Date.After(to) {
			return false
		}
		return true
	}
}
