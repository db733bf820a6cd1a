// Package graph provides the case network model and its JSON format.
//
// A [Graph] is an ordered list of [Node] values (cases plotted at a date and
// a rank within that day) and [Link] values (directed relations between two
// cases, tagged with a category). A [NodeIndex] maps ids to the very same
// node pointers held by the graph, so the renderer can resolve link
// endpoints without copying.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [
//	    {"id": 1, "date": "2020-03-01", "dayOrder": 0, "r": 4, "source": "import",
//	     "properties": {"case_no": 1, "source_no": 0}}
//	  ],
//	  "links": [{"source": 1, "target": 2, "type": "family"}]
//	}
//
// Ids, categories and property values may be JSON strings or numbers; they
// are normalized to [Key]. Dates accept "2006-01-02" or RFC 3339.
//
// Loading rejects duplicate node ids but keeps links whose endpoints are
// unknown: the renderer draws them against a fallback position instead.
package graph
