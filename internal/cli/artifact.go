package cli

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/render"
	"github.com/matzehuels/casegraph/pkg/render/nodelink"
	"github.com/matzehuels/casegraph/pkg/scene"
	"github.com/matzehuels/casegraph/pkg/sink"
	"github.com/matzehuels/casegraph/pkg/timeline"
)

// Visualization kinds.
const (
	kindTimeline = "timeline"
	kindNodelink = "nodelink"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
	formatDOT = "dot"
)

// formatsByKind lists the output formats each visualization supports.
var formatsByKind = map[string][]string{
	kindTimeline: {formatSVG, formatPNG, formatPDF},
	kindNodelink: {formatSVG, formatPNG, formatPDF, formatDOT},
}

// validateOutput checks the kind and format combination.
func validateOutput(kind, format string) error {
	formats, ok := formatsByKind[kind]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid type: %s (must be 'timeline' or 'nodelink')", kind)
	}
	if !slices.Contains(formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "%s output does not support format %q", kind, format)
	}
	return nil
}

// artifactRequest describes one rendering.
type artifactRequest struct {
	kind     string
	format   string
	timeline timeline.Config
	render   renderConfig
	detailed bool
}

// artifact is a rendered output plus what the renderer reported.
type artifact struct {
	data  []byte
	stats timeline.UpdateStats
}

// renderArtifact draws g as requested. Each call builds its own chart, so
// concurrent calls are safe.
func renderArtifact(g *graph.Graph, req artifactRequest, logger *log.Logger) (artifact, error) {
	if err := validateOutput(req.kind, req.format); err != nil {
		return artifact{}, err
	}
	if req.kind == kindNodelink {
		return renderNodelink(g, req)
	}

	svg, stats, err := renderTimelineSVG(g, req.timeline, req.render, logger)
	if err != nil {
		return artifact{}, err
	}
	data, err := convert(svg, req.format, req.render.PNGScale)
	return artifact{data: data, stats: stats}, err
}

func renderTimelineSVG(g *graph.Graph, cfg timeline.Config, rc renderConfig, logger *log.Logger) ([]byte, timeline.UpdateStats, error) {
	mount := scene.New("svg")
	chart, err := timeline.New(mount, g, nil, graph.NewIndex(g), cfg, timeline.WithLogger(logger))
	if err != nil {
		return nil, timeline.UpdateStats{}, err
	}

	laid := chart.Config()
	opts := []sink.SVGOption{sink.WithSize(laid.Width, laid.Height)}
	if rc.Interaction {
		opts = append(opts, sink.WithInteraction())
	}
	if rc.Background != "" {
		opts = append(opts, sink.WithBackground(rc.Background))
	}
	return sink.RenderSVG(mount, opts...), chart.Stats(), nil
}

func renderNodelink(g *graph.Graph, req artifactRequest) (artifact, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: req.detailed})
	out := artifact{stats: timeline.UpdateStats{Nodes: len(g.Nodes), Links: len(g.Links)}}
	if req.format == formatDOT {
		out.data = []byte(dot)
		return out, nil
	}
	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return out, err
	}
	out.data, err = convert(svg, req.format, req.render.PNGScale)
	return out, err
}

func convert(svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case formatPNG:
		if scale <= 0 {
			scale = defaultPNGScale
		}
		return render.ToPNG(svg, scale)
	case formatPDF:
		return render.ToPDF(svg)
	default:
		return svg, nil
	}
}

// dateWindow parses the --from/--to bounds (YYYY-MM-DD, either may be
// empty) into a node filter. It returns nil when both are empty.
func dateWindow(from, to string) (func(*graph.Node) bool, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	lo, err := parseDay(from)
	if err != nil {
		return nil, err
	}
	hi, err := parseDay(to)
	if err != nil {
		return nil, err
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "date window ends (%s) before it starts (%s)", to, from)
	}
	if !hi.IsZero() {
		hi = hi.AddDate(0, 0, 1).Add(-time.Nanosecond) // whole last day
	}
	return graph.Between(lo, hi), nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// applyWindow returns the active subset of g for the window, or g itself.
func applyWindow(g *graph.Graph, from, to string) (*graph.Graph, error) {
	keep, err := dateWindow(from, to)
	if err != nil || keep == nil {
		return g, err
	}
	return g.Filter(keep), nil
}
