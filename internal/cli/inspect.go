package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/graph"
)

// graphSummary is what inspect reports about a graph.
type graphSummary struct {
	nodes, links   int
	undated        int
	unresolved     int // links with at least one unknown endpoint
	categories     []graph.Key
	perCategory    map[graph.Key]int
	first, last    string // date range, empty when undated
	days           int
	minOrd, maxOrd float64
}

func summarize(g *graph.Graph) graphSummary {
	s := graphSummary{
		nodes:       len(g.Nodes),
		links:       len(g.Links),
		categories:  g.Categories(),
		perCategory: make(map[graph.Key]int),
	}
	idx := graph.NewIndex(g)
	for _, l := range g.Links {
		s.perCategory[l.Type]++
		if idx.Lookup(l.Source) == nil || idx.Lookup(l.Target) == nil {
			s.unresolved++
		}
	}
	for i, n := range g.Nodes {
		if !n.HasDate() {
			s.undated++
		}
		if i == 0 || n.DayOrder < s.minOrd {
			s.minOrd = n.DayOrder
		}
		if i == 0 || n.DayOrder > s.maxOrd {
			s.maxOrd = n.DayOrder
		}
	}
	if lo, hi, ok := g.DateRange(); ok {
		s.first, s.last = lo.Format("2006-01-02"), hi.Format("2006-01-02")
		s.days = int(hi.Sub(lo).Hours()/24) + 1
	}
	return s
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Summarize a case graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if os.IsNotExist(err) {
				return errors.New(errors.ErrCodeFileNotFound, "graph file not found: %s", args[0])
			}
			if err != nil {
				return err
			}
			g, err := graph.ImportGraph(args[0])
			if err != nil {
				return err
			}
			printSummary(args[0], uint64(info.Size()), summarize(g))
			return nil
		},
	}
}

func printSummary(path string, size uint64, s graphSummary) {
	fmt.Println(StyleTitle.Render("Case graph"))
	printKeyValue("File", fmt.Sprintf("%s %s", path, StyleDim.Render("("+humanize.Bytes(size)+")")))

	cases := humanize.Comma(int64(s.nodes))
	if s.undated > 0 {
		cases += StyleDim.Render(fmt.Sprintf(" (%s undated)", humanize.Comma(int64(s.undated))))
	}
	printKeyValue("Cases", cases)

	links := humanize.Comma(int64(s.links))
	if s.unresolved > 0 {
		links += " " + StyleWarning.Render(fmt.Sprintf("(%s unresolved)", humanize.Comma(int64(s.unresolved))))
	}
	printKeyValue("Links", links)

	if len(s.categories) > 0 {
		parts := make([]string, len(s.categories))
		for i, cat := range s.categories {
			name := string(cat)
			if name == "" {
				name = "(none)"
			}
			parts[i] = name + " " + StyleNumber.Render(humanize.Comma(int64(s.perCategory[cat])))
		}
		printKeyValue("Categories", strings.Join(parts, StyleDim.Render(" · ")))
	}

	if s.first != "" {
		printKeyValue("Dates", fmt.Sprintf("%s %s %s %s", s.first, iconArrow, s.last,
			StyleDim.Render(fmt.Sprintf("(%s days)", humanize.Comma(int64(s.days))))))
	}
	if s.nodes > 0 {
		printKeyValue("Day order", fmt.Sprintf("%s – %s",
			strconv.FormatFloat(s.minOrd, 'f', -1, 64), strconv.FormatFloat(s.maxOrd, 'f', -1, 64)))
	}
}
