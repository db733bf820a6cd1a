package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/casegraph/pkg/cache"
	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/graph"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path, "-" for stdout
	kind        string  // timeline or nodelink
	format      string  // svg, png, pdf, dot
	width       float64 // viewport width in pixels
	height      float64 // viewport height in pixels
	lang        string  // caption language
	from, to    string  // date window, YYYY-MM-DD
	detailed    bool    // detailed nodelink labels
	interactive bool    // embed hover highlighting
	noCache     bool
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{kind: kindTimeline, format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a case graph to SVG, PNG or PDF",
		Long: `Render a case graph as a timeline (cases by date and order within the day,
linked by arcs) or as a Graphviz node-link diagram.

The graph file holds {"nodes": [...], "links": [...]}; see inspect for a summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			req := c.applyRenderFlags(cmd, cfg, &opts)
			return c.runRender(cmd.Context(), args[0], req, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.kind, "type", "t", opts.kind, "visualization type: timeline, nodelink")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, pdf, dot (nodelink only)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width (default from config, 1200)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height (default from config, 600)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "caption language: en, ro")
	cmd.Flags().StringVar(&opts.from, "from", "", "only cases dated on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "only cases dated on or before this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show dates and link types (nodelink)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", true, "embed hover highlighting in SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered-output cache")

	return cmd
}

// applyRenderFlags layers explicitly set flags over the config file.
func (c *CLI) applyRenderFlags(cmd *cobra.Command, cfg fileConfig, opts *renderOpts) artifactRequest {
	req := artifactRequest{
		kind:     opts.kind,
		format:   strings.ToLower(opts.format),
		timeline: cfg.Timeline,
		render:   cfg.Render,
		detailed: opts.detailed,
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		req.timeline.Width = opts.width
	}
	if flags.Changed("height") {
		req.timeline.Height = opts.height
	}
	if flags.Changed("lang") {
		req.timeline.Language = opts.lang
	}
	if flags.Changed("interactive") {
		req.render.Interaction = opts.interactive
	}
	return req
}

func (c *CLI) runRender(ctx context.Context, input string, req artifactRequest, opts *renderOpts) error {
	if err := validateOutput(req.kind, req.format); err != nil {
		return err
	}
	if err := req.timeline.Validate(); err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	raw, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "graph file not found: %s", input)
	}
	if err != nil {
		return err
	}
	g, err := graph.ReadGraph(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded graph: %d nodes, %d links", len(g.Nodes), len(g.Links))

	if g, err = applyWindow(g, opts.from, opts.to); err != nil {
		return err
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.ArtifactKey(cache.Hash(raw), artifactKeyOpts(req, opts))
	data, cached, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Debug("Cache read failed", "err", err)
	}

	nodes, links := len(g.Nodes), len(g.Links)
	if !cached {
		out, err := renderArtifact(g, req, c.Logger)
		if err != nil {
			return err
		}
		data = out.data
		nodes, links = out.stats.Nodes, out.stats.Links
		if out.stats.Unresolved > 0 {
			printWarning("%d link endpoints could not be resolved and were drawn at the axis origin", out.stats.Unresolved)
		}
		if err := store.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			c.Logger.Debug("Cache write failed", "err", err)
		}
	}

	path := outputPath(opts.output, input, req.kind, req.format)
	if err := writeOutput(path, data); err != nil {
		return err
	}
	prog.done("Rendered " + req.kind)
	if path != "-" {
		printFile(path)
		printStats(nodes, links, cached)
	}
	return nil
}

func artifactKeyOpts(req artifactRequest, opts *renderOpts) cache.ArtifactKeyOpts {
	m := req.timeline.Margin
	return cache.ArtifactKeyOpts{
		Kind:     req.kind,
		Format:   req.format,
		Width:    req.timeline.Width,
		Height:   req.timeline.Height,
		Language: req.timeline.Language,
		From:     opts.from,
		To:       opts.to,
		Detailed: req.detailed,

		Margin:      [4]float64{m.Top, m.Right, m.Bottom, m.Left},
		Interactive: req.render.Interaction,
		Background:  req.render.Background,
		PNGScale:    req.render.PNGScale,
	}
}

// outputPath derives the output file from the input when none is given:
// cases.json becomes cases.svg, or cases_nodelink.svg for node-link output.
func outputPath(output, input, kind, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if kind == kindNodelink {
		base += "_" + kindNodelink
	}
	return base + "." + format
}

func writeOutput(path string, data []byte) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	return err
}
