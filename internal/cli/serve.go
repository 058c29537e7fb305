package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timespiral/pkg/buildinfo"
	"github.com/matzehuels/timespiral/pkg/dataset"
	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/observability"
	"github.com/matzehuels/timespiral/pkg/pipeline"
)

const (
	defaultAddr      = ":8080"
	defaultMaxBody   = 16 << 20
	renderIDHeader   = "X-Render-ID"
	shutdownDeadline = 10 * time.Second
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatParquet: "application/vnd.apache.parquet",
}

// serveCommand creates the serve command running the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		caches  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

  POST /v1/render?format=svg   render a dataset; body:
                               {"options": {...}, "data": [{"date": "2024-01-01", "value": 3}]}
                               or {"options": {...}, "csv": "date,value\n2024-01-01,3\n"}
  GET  /healthz                liveness probe

Every render is tagged with an ID returned in the X-Render-ID header.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, maxBody, caches)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", defaultMaxBody, "maximum request body size in bytes")
	caches.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, maxBody int64, caches cacheFlags) error {
	runner, err := c.newRunner(ctx, caches)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, c.Logger, maxBody).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("listening", "addr", addr, "version", buildinfo.Get().Version)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// HTTP Server
// =============================================================================

// server serves renders concurrently; each request runs its own pass.
type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

func newServer(runner *pipeline.Runner, logger *log.Logger, maxBody int64) *server {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &server{runner: runner, logger: logger, maxBody: maxBody}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.withRenderID)
		r.Post("/render", s.handleRender)
	})
	return r
}

// renderRequest is the body of POST /v1/render.
type renderRequest struct {
	Options pipeline.Options `json:"options"`
	Data    json.RawMessage  `json:"data,omitempty"`
	CSV     string           `json:"csv,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error    string    `json:"error"`
	Code     errs.Code `json:"code,omitempty"`
	RenderID string    `json:"render_id,omitempty"`
}

type renderIDKey struct{}

// withRenderID tags the request with a fresh render ID.
func (s *server) withRenderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(renderIDHeader, id)
		ctx := context.WithValue(r.Context(), renderIDKey{}, id)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.Server().OnRequest(ctx, id, r.Method, r.URL.Path)
		next.ServeHTTP(ww, r.WithContext(ctx))
		observability.Server().OnResponse(ctx, id, ww.Status(), time.Since(start))
	})
}

func renderIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(renderIDKey{}).(string)
	return id
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := renderIDFrom(ctx)
	logger := s.logger.With("render_id", id)

	req := renderRequest{Options: pipeline.DefaultOptions()}
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, id, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, id, err)
		return
	}
	opts := req.Options
	opts.Formats = []string{format}
	opts.Logger = logger

	ds, err := req.dataset(opts.Fields)
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	result, err := s.runner.Execute(ctx, ds, opts)
	if err != nil {
		logger.Warn("render failed", "err", err)
		s.writeError(w, id, err)
		return
	}

	logger.Info("rendered",
		"format", format,
		"bars", result.Stats.Bars,
		"cached", result.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// dataset decodes the observations carried by the request.
func (req *renderRequest) dataset(fields dataset.Fields) (*dataset.Dataset, error) {
	switch {
	case req.CSV != "":
		return dataset.Decode([]byte(req.CSV), dataset.FormatCSV, fields)
	case len(req.Data) > 0:
		return dataset.Decode(req.Data, dataset.FormatJSON, fields)
	}
	return nil, errs.New(errs.ErrCodeInvalidInput, "request carries no data (set \"data\" or \"csv\")")
}

func (s *server) writeError(w http.ResponseWriter, id string, err error) {
	writeJSON(w, errs.HTTPStatus(err), errorResponse{
		Error:    errs.UserMessage(err),
		Code:     errs.GetCode(err),
		RenderID: id,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
