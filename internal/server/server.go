// Package server exposes the document pipeline over HTTP. Request bodies are
// checked against the embedded OpenAPI document before they reach the
// pipeline; every response carries an X-Request-ID.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/orchestrator"
	"github.com/goliatone/go-uispec/pkg/render"
	"github.com/goliatone/go-uispec/pkg/validation"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// Option customises the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOrchestrator sets the document pipeline.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.pipeline = o
	}
}

// WithExtractor enables /api/intent.
func WithExtractor(extractor *intent.Extractor) Option {
	return func(s *Server) {
		s.extractor = extractor
	}
}

// WithRegistry sets the renderers available to /api/render.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

// WithDefaultRenderer names the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(s *Server) {
		s.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithRenderOptions sets the catalog and theme handed to renderers.
func WithRenderOptions(options render.RenderOptions) Option {
	return func(s *Server) {
		s.renderOptions = options
	}
}

// Server is the HTTP transport for the pipeline.
type Server struct {
	logger          *zap.Logger
	pipeline        *orchestrator.Orchestrator
	extractor       *intent.Extractor
	registry        *render.Registry
	defaultRenderer string
	renderOptions   render.RenderOptions
	schemas         openapi3.Schemas
}

// New constructs a Server. The embedded OpenAPI document is loaded and
// validated here so a broken contract fails at startup.
func New(options ...Option) (*Server, error) {
	s := &Server{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.pipeline == nil {
		s.pipeline = orchestrator.New(orchestrator.WithLogger(s.logger))
	}
	if s.registry == nil {
		registry, err := render.NewRegistry()
		if err != nil {
			return nil, err
		}
		s.registry = registry
	}
	if s.renderOptions.Catalog == nil {
		s.renderOptions.Catalog = s.pipeline.Catalog()
	}

	doc, err := loadOpenAPI(context.Background())
	if err != nil {
		return nil, err
	}
	s.schemas = doc.Components.Schemas
	return s, nil
}

// OpenAPI returns the embedded API description.
func OpenAPI() []byte {
	return append([]byte(nil), openAPIDocument...)
}

func loadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("server: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("server: invalid openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, errors.New("server: openapi document has no components")
	}
	return doc, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)
	r.Route("/api", func(r chi.Router) {
		r.Post("/intent", s.handleIntent)
		r.Post("/spec", s.handleSpec)
		r.Post("/build", s.handleBuild)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

// decode reads a JSON body, checks it against the named schema, then decodes
// it into out.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, out any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return StatusError{Code: http.StatusRequestEntityTooLarge, Err: fmt.Errorf("read body: %w", err)}
	}

	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON: %w", err)}
	}
	ref, ok := s.schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return StatusError{Code: http.StatusInternalServerError, Err: fmt.Errorf("schema %q is not defined", schema)}
	}
	if err := ref.Value.VisitJSON(generic); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("request does not match %s: %w", schema, err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	resp := errorResponse{
		Error:     err.Error(),
		RequestID: RequestIDFrom(r.Context()),
	}
	var invalid *validation.ValidationError
	if errors.As(err, &invalid) {
		resp.Issues = invalid.Issues
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", resp.RequestID), zap.Int("status", status), zap.Error(err))
	}
	s.writeJSON(w, status, resp)
}

type specResponse struct {
	Spec   model.UiSpec        `json:"spec"`
	Report orchestrator.Report `json:"report"`
	Error  string              `json:"error,omitempty"`
}

type buildRequest struct {
	Candidate string        `json:"candidate"`
	Intent    intent.Intent `json:"intent"`
}

type renderRequest struct {
	Spec     json.RawMessage `json:"spec"`
	Renderer string          `json:"renderer"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"renderers": s.registry.List(),
		"media":     s.pipeline.Catalog().Len(),
	})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.writeError(w, r, StatusError{Code: http.StatusServiceUnavailable, Err: errors.New("intent extraction is not configured")})
		return
	}
	var brief intent.Brief
	if err := s.decode(w, r, "Brief", &brief); err != nil {
		s.writeError(w, r, err)
		return
	}
	if brief.Empty() {
		s.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: errors.New("brief is empty")})
		return
	}
	out, err := s.extractor.Extract(r.Context(), brief)
	if err != nil {
		s.writeError(w, r, StatusError{Code: http.StatusBadGateway, Err: err})
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleSpec answers 502 when the generator failed; the body still carries
// the fallback document so clients can show something.
func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	var in intent.Intent
	if err := s.decode(w, r, "Intent", &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	in.Tone = intent.ParseTone(string(in.Tone))

	spec, report, err := s.pipeline.Generate(r.Context(), in)
	resp := specResponse{Spec: spec, Report: report}
	if err != nil {
		resp.Error = err.Error()
		s.writeJSON(w, statusOf(err), resp)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := s.decode(w, r, "BuildRequest", &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Intent.Tone = intent.ParseTone(string(req.Intent.Tone))

	spec, report := s.pipeline.BuildWithReport(req.Candidate, req.Intent)
	s.writeJSON(w, http.StatusOK, specResponse{Spec: spec, Report: report})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, "RenderRequest", &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	spec, err := validation.Validate(req.Spec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = req.Renderer
	}
	renderer, err := s.registry.Resolve(name, s.defaultRenderer)
	if err != nil {
		s.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}

	out, err := renderer.Render(r.Context(), spec, s.renderOptions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
