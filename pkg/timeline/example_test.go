package timeline_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/scene"
	"github.com/matzehuels/casegraph/pkg/timeline"
)

func ExampleArcPath() {
	// Left to right bows one way, right to left the other.
	fmt.Println(timeline.ArcPath(10, 50, 110, 40))
	fmt.Println(timeline.ArcPath(110, 40, 10, 50))
	// Output:
	// M10,50A50,50 0 0,1 110,40
	// M110,40A50,50 0 0,0 10,50
}

func ExampleMarkerID() {
	fmt.Println(timeline.MarkerID("family"))
	// Output: arrow-family
}

func ExampleNew() {
	day := func(d int) time.Time { return time.Date(2020, 3, d, 0, 0, 0, 0, time.UTC) }
	g := &graph.Graph{
		Nodes: []*graph.Node{
			{ID: "1", Date: day(1), R: 4},
			{ID: "2", Date: day(4), DayOrder: 1, R: 4},
		},
		Links: []graph.Link{{Source: "1", Target: "2", Type: "family"}},
	}

	chart, err := timeline.New(scene.New("svg"), g, nil, graph.NewIndex(g), timeline.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	stats := chart.Stats()
	fmt.Printf("nodes=%d links=%d markers=%d\n", stats.Nodes, stats.Links, stats.Markers)
	// Output: nodes=2 links=1 markers=1
}
