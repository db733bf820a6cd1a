package cli

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/casegraph/pkg/buildinfo"
	"github.com/matzehuels/casegraph/pkg/cache"
	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// server serves one graph loaded at startup.
type server struct {
	graph    *graph.Graph
	hash     string // content hash of graph, for cache keys
	cfg      fileConfig
	cache    cache.Cache
	logger   *log.Logger
	registry *prometheus.Registry
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve the timeline over HTTP",
		Long: `Serve a case graph over HTTP.

Routes:
  GET /timeline.svg   timeline (query: lang, from, to, width, height)
  GET /nodelink.svg   Graphviz node-link diagram (query: from, to, detailed)
  GET /graph.json     the graph, optionally windowed (query: from, to)
  GET /metrics        Prometheus metrics
  GET /healthz        liveness probe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}

			g, err := graph.ImportGraph(args[0])
			if err != nil {
				return err
			}
			store, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := graph.MarshalGraph(g)
			if err != nil {
				return err
			}
			s := &server{
				graph:    g,
				hash:     cache.Hash(data),
				cfg:      cfg,
				cache:    store,
				logger:   c.Logger,
				registry: prometheus.NewRegistry(),
			}
			newPromMetrics(s.registry).install()
			defer observability.Reset()

			return s.listen(cmd.Context(), cfg.Serve.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the rendered-output cache")
	return cmd
}

func (s *server) listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Serving %d cases on http://%s", len(s.graph.Nodes), addr)
	s.logger.Debug("build", "version", buildinfo.Version, "commit", buildinfo.Commit)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/graph.json", s.handleGraph)
	r.Get("/timeline.svg", s.handleArtifact(kindTimeline))
	r.Get("/nodelink.svg", s.handleArtifact(kindNodelink))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// instrument reports every request to the server hooks under its route
// pattern, so path parameters do not explode label cardinality.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "took", d)
	})
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, err := applyWindow(s.graph, q.Get("from"), q.Get("to"))
	if err != nil {
		s.fail(w, err)
		return
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *server) handleArtifact(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := artifactRequest{
			kind:     kind,
			format:   formatSVG,
			timeline: s.cfg.Timeline,
			render:   s.cfg.Render,
			detailed: q.Get("detailed") == "true",
		}
		if lang := q.Get("lang"); lang != "" {
			req.timeline.Language = lang
		}
		for param, dst := range map[string]*float64{"width": &req.timeline.Width, "height": &req.timeline.Height} {
			if v := q.Get(param); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", param, v))
					return
				}
				*dst = f
			}
		}
		if err := req.timeline.Validate(); err != nil {
			s.fail(w, err)
			return
		}

		from, to := q.Get("from"), q.Get("to")
		g, err := applyWindow(s.graph, from, to)
		if err != nil {
			s.fail(w, err)
			return
		}

		key := cache.ArtifactKey(s.hash, artifactKeyOpts(req, &renderOpts{from: from, to: to}))
		data, hit, _ := s.cache.Get(r.Context(), key)
		if !hit {
			out, err := renderArtifact(g, req, s.logger)
			if err != nil {
				s.fail(w, err)
				return
			}
			data = out.data
			if err := s.cache.Set(r.Context(), key, data, cache.DefaultTTL); err != nil {
				s.logger.Debug("Cache write failed", "err", err)
			}
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(data)
	}
}

func (s *server) fail(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}
