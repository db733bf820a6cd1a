package graph_test

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/casegraph/pkg/graph"
)

func ExampleWriteGraph() {
	g := &graph.Graph{
		Nodes: []*graph.Node{
			{ID: "1", Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), R: 4, Source: "import"},
		},
		Links: []graph.Link{{Source: "1", Target: "2", Type: "family"}},
	}

	if err := graph.WriteGraph(g, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "1",
	//       "date": "2020-03-01",
	//       "dayOrder": 0,
	//       "r": 4,
	//       "source": "import"
	//     }
	//   ],
	//   "links": [
	//     {
	//       "source": "1",
	//       "target": "2",
	//       "type": "family"
	//     }
	//   ]
	// }
}

func ExampleReadGraph() {
	jsonData := `{
		"nodes": [
			{"id": 1, "date": "2020-03-01", "dayOrder": 0, "r": 4},
			{"id": 2, "date": "2020-03-03", "dayOrder": 1, "r": 4}
		],
		"links": [{"source": 1, "target": 2, "type": "family"}]
	}`

	g, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	idx := graph.NewIndex(g)
	l := g.Links[0]
	fmt.Printf("%s -> %s on %s\n", l.Source, l.Target, idx.Lookup(l.Target).Date.Format("Jan 2"))
	// Output:
	// 1 -> 2 on Mar 3
}
