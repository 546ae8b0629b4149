package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/internal/dto"
	"github.com/aretw0/portgraph/internal/presentation/graph"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxDocumentBytes bounds the request body of POST /build.
const MaxDocumentBytes = 1 << 20

// Render modes accepted by the "render" query parameter.
const (
	RenderJSON     = "json"
	RenderText     = "text"
	RenderMermaid  = "mermaid"
	RenderMarkdown = "markdown"
)

// Server exposes a GraphEngine over HTTP.
type Server struct {
	Engine  ports.GraphEngine
	Streams *StreamManager
	Logger  *slog.Logger
	Metrics prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithStreams shares a StreamManager whose Hooks feed the builder.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics mounts GET /metrics for the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.GraphEngine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.Logger)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/build", server.PostBuild)
	r.Get("/graphs", server.ListGraphs)
	r.Get("/graphs/{name}", server.GetGraph)
	r.Get("/events", server.SubscribeEvents)
	if server.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Metrics, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ErrorResponse is the JSON body of every failed request. Build failures fill
// in the location fields.
type ErrorResponse struct {
	Error      string           `json:"error"`
	Kind       domain.ErrorKind `json:"kind,omitempty"`
	Category   string           `json:"category,omitempty"`
	Node       string           `json:"node,omitempty"`
	Connection *int             `json:"connection,omitempty"`
	Ref        string           `json:"ref,omitempty"`
}

// PostBuild handles POST /build. The body is a JSON or YAML document; the
// "format" query parameter forces one, otherwise it is detected.
func (s *Server) PostBuild(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	format := value.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = value.DetectFormat(body)
	}
	doc, err := value.Parse(body, format)
	if err != nil {
		s.Logger.Warn("Build: Invalid request body", "err", err)
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := s.Engine.Build(r.Context(), doc)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}
	s.render(w, r, g)
}

// ListGraphs handles GET /graphs.
func (s *Server) ListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.Logger.Error("List failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

// GetGraph handles GET /graphs/{name}: it builds the stored document.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.Engine.Load(r.Context(), name)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}
	s.render(w, r, g)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "portgraph-http",
		"version": strings.TrimSpace(portgraph.Version),
	})
}

// SubscribeEvents handles GET /events (SSE). The optional "watch" parameter is
// a comma separated list of event types to keep.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	watch := make(map[domain.EventType]bool)
	if raw := r.URL.Query().Get("watch"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			watch[domain.EventType(strings.TrimSpace(t))] = true
		}
	}

	ch, cancel := s.Streams.Subscribe()
	defer cancel()
	s.Logger.Info("SSE: Subscribing to build events", "watch", r.URL.Query().Get("watch"))

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected")
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watch[evt.Type] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, evt.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, g *domain.Graph) {
	mode := r.URL.Query().Get("render")
	switch mode {
	case "", RenderJSON:
		s.writeJSON(w, http.StatusOK, dto.FromGraph(g))
	case RenderText:
		out, err := graph.Sprint(g)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.writeText(w, "text/plain; charset=utf-8", out)
	case RenderMermaid:
		s.writeText(w, "text/plain; charset=utf-8", graph.GenerateMermaid(g, nil))
	case RenderMarkdown:
		s.writeText(w, "text/markdown; charset=utf-8", graph.Describe(g))
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown render mode %q", mode))
	}
}

// writeBuildError maps engine failures: build errors are 422, missing
// documents 404, anything else 500.
func (s *Server) writeBuildError(w http.ResponseWriter, err error) {
	var be *domain.BuildError
	switch {
	case errors.As(err, &be):
		resp := ErrorResponse{
			Error:    err.Error(),
			Kind:     be.Kind,
			Category: be.Kind.Category(),
			Node:     be.Node,
			Ref:      be.Ref,
		}
		if be.Connection != domain.NoConnection {
			resp.Connection = &be.Connection
		}
		s.Logger.Warn("Build rejected", "kind", be.Kind, "err", err)
		s.writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, ports.ErrDocumentNotFound):
		s.writeError(w, http.StatusNotFound, err)
	default:
		s.Logger.Error("Build failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		s.Logger.Error("Response write failed", "err", err)
	}
}
