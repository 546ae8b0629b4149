package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/internal/dto"
	"github.com/aretw0/portgraph/internal/presentation/graph"
	"github.com/aretw0/portgraph/internal/validator"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// BuildResponse is the structured result of the build tools.
type BuildResponse struct {
	Graph *dto.GraphView     `json:"graph,omitempty" jsonschema_description:"The built graph"`
	Error *domain.BuildError `json:"error,omitempty" jsonschema_description:"Where and why the build failed"`
	Text  string             `json:"text" jsonschema_description:"The graph in the printer format, or the error message"`
}

// Server wraps a GraphEngine and exposes it as an MCP Server.
type Server struct {
	engine    ports.GraphEngine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.GraphEngine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("portgraph-mcp", strings.TrimSpace(portgraph.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: build_graph
	buildTool := mcp.NewTool("build_graph",
		mcp.WithDescription("Build a node graph from a JSON or YAML document and print it."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document text with \"nodes\" and optional \"connections\"")),
		mcp.WithString("format", mcp.Description("json or yaml (detected when omitted)")),
		mcp.WithOutputSchema[BuildResponse](),
	)
	s.mcpServer.AddTool(buildTool, mcp.NewStructuredToolHandler(s.handleBuild))

	// TOOL: load_graph
	loadTool := mcp.NewTool("load_graph",
		mcp.WithDescription("Build a stored document by name and print it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Document name, as returned by list_documents")),
		mcp.WithOutputSchema[BuildResponse](),
	)
	s.mcpServer.AddTool(loadTool, mcp.NewStructuredToolHandler(s.handleLoad))

	// TOOL: render_mermaid
	s.mcpServer.AddTool(mcp.NewTool("render_mermaid",
		mcp.WithDescription("Render a stored document, or an inline one, as a Mermaid flowchart."),
		mcp.WithString("name", mcp.Description("Stored document name")),
		mcp.WithString("document", mcp.Description("Inline document text, used when name is empty")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g, err := s.resolve(ctx, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(g, nil)), nil
	})

	// TOOL: validate_graph
	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Lint a graph for unconnected ports, isolated and unreachable nodes."),
		mcp.WithString("name", mcp.Description("Stored document name")),
		mcp.WithString("document", mcp.Description("Inline document text, used when name is empty")),
		mcp.WithBoolean("strict", mcp.Description("Report unconnected inputs as errors")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		g, err := s.resolve(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		strict, _ := args["strict"].(bool)
		report, err := validator.ValidateGraph(g, validator.Options{Strict: strict})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		jsonBytes, _ := json.Marshal(report)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: list_documents
	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the names of the stored graph documents."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.engine.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleBuild(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BuildResponse, error) {
	doc, err := parseArg(args)
	if err != nil {
		return BuildResponse{}, err
	}
	g, err := s.engine.Build(ctx, doc)
	return s.respond(g, err)
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BuildResponse, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return BuildResponse{}, errors.New("name is required")
	}
	g, err := s.engine.Load(ctx, name)
	return s.respond(g, err)
}

// respond folds build failures into the response so the caller sees the
// location; other errors fail the tool call.
func (s *Server) respond(g *domain.Graph, err error) (BuildResponse, error) {
	var be *domain.BuildError
	if errors.As(err, &be) {
		s.logger.Warn("MCP Build: rejected", "kind", be.Kind, "err", err)
		return BuildResponse{Error: be, Text: err.Error()}, nil
	}
	if err != nil {
		return BuildResponse{}, err
	}

	text, err := graph.Sprint(g)
	if err != nil {
		return BuildResponse{}, err
	}
	view := dto.FromGraph(g)
	return BuildResponse{Graph: &view, Text: text}, nil
}

// resolve builds the graph named by "name", or the inline "document".
func (s *Server) resolve(ctx context.Context, args map[string]any) (*domain.Graph, error) {
	if name, _ := args["name"].(string); name != "" {
		return s.engine.Load(ctx, name)
	}
	doc, err := parseArg(args)
	if err != nil {
		return nil, err
	}
	return s.engine.Build(ctx, doc)
}

func parseArg(args map[string]any) (*value.Value, error) {
	raw, _ := args["document"].(string)
	if raw == "" {
		return nil, errors.New("document is required")
	}
	name, _ := args["format"].(string)
	format := value.Format(name)
	if format == "" {
		format = value.DetectFormat([]byte(raw))
	}
	doc, err := value.Parse([]byte(raw), format)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

func (s *Server) registerResources() {
	// EXPOSE: portgraph://documents
	s.mcpServer.AddResource(mcp.NewResource("portgraph://documents", "Stored Graph Documents",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "portgraph://documents",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
