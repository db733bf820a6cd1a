package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// dateLayout is the day-resolution date format used on the wire.
const dateLayout = "2006-01-02"

// =============================================================================
// Key - Flexible Identifier
// =============================================================================

// Key is a string identifier that decodes from a JSON string or number.
// It is used for node ids, link endpoints and categories.
type Key string

// UnmarshalJSON accepts "abc", 12 and 1.5 alike. null decodes to "".
func (k *Key) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*k = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = Key(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("key must be a string or number, got %s", b)
	}
	*k = Key(b)
	return nil
}

// String returns the key as a plain string.
func (k Key) String() string { return string(k) }

// =============================================================================
// Node - Plotted Case
// =============================================================================

// Properties holds optional case metadata used for element ids and classes.
type Properties struct {
	CaseNo   Key `json:"case_no,omitempty"`
	SourceNo Key `json:"source_no,omitempty"`
}

// Node is a case plotted at (Date, DayOrder).
type Node struct {
	ID         Key
	Date       time.Time // zero when the input had no date
	DayOrder   float64   // rank within the day
	R          float64   // circle radius, used verbatim
	Source     Key       // category of the case
	Properties *Properties
}

// HasDate reports whether the node carries a usable date.
func (n *Node) HasDate() bool { return !n.Date.IsZero() }

type nodeJSON struct {
	ID         Key         `json:"id"`
	Date       string      `json:"date,omitempty"`
	DayOrder   float64     `json:"dayOrder"`
	R          float64     `json:"r"`
	Source     Key         `json:"source,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

// MarshalJSON writes day-resolution dates as "2006-01-02" and anything finer
// as RFC 3339.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		ID:         n.ID,
		Date:       formatDate(n.Date),
		DayOrder:   n.DayOrder,
		R:          n.R,
		Source:     n.Source,
		Properties: n.Properties,
	})
}

// UnmarshalJSON decodes the wire format described in the package docs.
func (n *Node) UnmarshalJSON(b []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	date, err := parseDate(w.Date)
	if err != nil {
		return fmt.Errorf("node %s: %w", w.ID, err)
	}
	*n = Node{
		ID:         w.ID,
		Date:       date,
		DayOrder:   w.DayOrder,
		R:          w.R,
		Source:     w.Source,
		Properties: w.Properties,
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// =============================================================================
// Link - Directed Relation
// =============================================================================

// Link is a directed relation between two nodes, tagged by category.
type Link struct {
	Source Key `json:"source"`
	Target Key `json:"target"`
	Type   Key `json:"type"`
}

// =============================================================================
// Graph and NodeIndex
// =============================================================================

// Graph is the ordered node and link sequences of a case network.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []Link  `json:"links"`
}

// NodeIndex maps node ids to the node pointers held by a [Graph].
type NodeIndex map[Key]*Node

// Lookup returns the node for id, or nil when it is unknown.
func (idx NodeIndex) Lookup(id Key) *Node {
	return idx[id]
}
