package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repoindex/core/internal/chunk"
	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/search"
)

// Server is the MCP server bridging AI clients to the five indexing and
// retrieval operations in internal/handlers.
type Server struct {
	mcp     *mcp.Server
	service *handlers.Service
	logger  *slog.Logger
}

// NewServer creates a new MCP server over an already-constructed Service.
func NewServer(service *handlers.Service, logger *slog.Logger) (*Server, error) {
	if service == nil {
		return nil, errors.New("handlers service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{service: service, logger: logger}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "repoindex",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// registerTools registers the five canonical operations as MCP tools.
func (s *Server) registerTools() {
	s.logger.Debug("registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index",
		Description: "Build or refresh a search index over one or more filesystem paths. Returns an index_id to pass to search, explore, get_chunk, and manage.",
	}, s.handleIndex)
	s.logger.Debug("registered tool", slog.String("name", "index"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Search an already-built index. Combines lexical and semantic ranking (mode=auto picks the best available) and returns ranked chunks with enough context to act on without re-reading the file.",
	}, s.handleSearch)
	s.logger.Debug("registered tool", slog.String("name", "search"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "explore",
		Description: "List a built index's files, document outline, or symbol table, optionally restricted by path prefix. Use this to understand the shape of a codebase before searching it.",
	}, s.handleExplore)
	s.logger.Debug("registered tool", slog.String("name", "explore"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_chunk",
		Description: "Fetch one chunk's full content by id or an unambiguous id prefix (at least 6 characters), for example to pull in a search result's neighboring context.",
	}, s.handleGetChunk)
	s.logger.Debug("registered tool", slog.String("name", "get_chunk"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "manage",
		Description: "List, delete, or verify the internal consistency of built indexes.",
	}, s.handleManage)
	s.logger.Debug("registered tool", slog.String("name", "manage"))

	s.logger.Info("MCP tools registered", slog.Int("count", 5))
}

func (s *Server) handleIndex(ctx context.Context, _ *mcp.CallToolRequest, input IndexToolInput) (
	*mcp.CallToolResult, IndexToolOutput, error,
) {
	requestID := generateRequestID()
	s.logger.Info("index started", slog.String("request_id", requestID), slog.Int("path_count", len(input.Paths)))

	if len(input.Paths) == 0 {
		return nil, IndexToolOutput{}, NewInvalidParamsError("paths parameter is required and must be non-empty")
	}

	res, err := s.service.Index(ctx, input.Paths, handlers.IndexOptions{
		ChunkTargetChars: input.ChunkTargetChars,
		ChunkMaxChars:    input.ChunkMaxChars,
		MaxFileBytes:     input.MaxFileBytes,
	})
	if err != nil {
		s.logger.Error("index failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, IndexToolOutput{}, MapError(err)
	}

	s.logger.Info("index completed",
		slog.String("request_id", requestID),
		slog.String("index_id", res.IndexID),
		slog.Bool("created", res.Created))

	return nil, IndexToolOutput{IndexID: res.IndexID, Created: res.Created, Stats: res.Stats}, nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchToolInput) (
	*mcp.CallToolResult, SearchToolOutput, error,
) {
	requestID := generateRequestID()
	s.logger.Info("search started", slog.String("request_id", requestID), slog.String("query", input.Query))

	if input.IndexID == "" {
		return nil, SearchToolOutput{}, NewInvalidParamsError("index_id parameter is required")
	}
	if input.Query == "" {
		return nil, SearchToolOutput{}, NewInvalidParamsError("query parameter is required")
	}

	resp, err := s.service.Search(ctx, handlers.SearchRequest{
		IndexID:   input.IndexID,
		Query:     input.Query,
		Limit:     input.Limit,
		MaxTokens: input.MaxTokens,
		Mode:      input.Mode,
		Filters: search.Filters{
			PathPrefix:    input.PathPrefix,
			Kind:          chunk.Kind(input.Kind),
			SymbolPrefix:  input.SymbolPrefix,
			HeadingPrefix: input.HeadingPrefix,
		},
	})
	if err != nil {
		s.logger.Error("search failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, SearchToolOutput{}, MapError(err)
	}

	s.logger.Info("search completed",
		slog.String("request_id", requestID),
		slog.Int("result_count", len(resp.Results)))

	return nil, SearchToolOutput{Results: resp.Results, TruncatedIDs: resp.TruncatedIDs, Partial: resp.Partial}, nil
}

func (s *Server) handleExplore(ctx context.Context, _ *mcp.CallToolRequest, input ExploreToolInput) (
	*mcp.CallToolResult, ExploreToolOutput, error,
) {
	requestID := generateRequestID()
	s.logger.Info("explore started", slog.String("request_id", requestID), slog.String("mode", input.Mode))

	if input.IndexID == "" {
		return nil, ExploreToolOutput{}, NewInvalidParamsError("index_id parameter is required")
	}

	res, err := s.service.Explore(ctx, input.IndexID, handlers.ExploreMode(input.Mode), input.PathFilter)
	if err != nil {
		s.logger.Error("explore failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, ExploreToolOutput{}, MapError(err)
	}

	return nil, ExploreToolOutput{Items: res.Items, Total: res.Total}, nil
}

func (s *Server) handleGetChunk(ctx context.Context, _ *mcp.CallToolRequest, input GetChunkToolInput) (
	*mcp.CallToolResult, GetChunkToolOutput, error,
) {
	requestID := generateRequestID()
	s.logger.Info("get_chunk started", slog.String("request_id", requestID), slog.String("ref", input.Ref))

	if input.IndexID == "" {
		return nil, GetChunkToolOutput{}, NewInvalidParamsError("index_id parameter is required")
	}
	if input.Ref == "" {
		return nil, GetChunkToolOutput{}, NewInvalidParamsError("ref parameter is required")
	}

	c, err := s.service.GetChunk(ctx, input.IndexID, input.Ref)
	if err != nil {
		s.logger.Error("get_chunk failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, GetChunkToolOutput{}, MapError(err)
	}

	return nil, GetChunkToolOutput{Chunk: *c}, nil
}

func (s *Server) handleManage(ctx context.Context, _ *mcp.CallToolRequest, input ManageToolInput) (
	*mcp.CallToolResult, ManageToolOutput, error,
) {
	requestID := generateRequestID()
	s.logger.Info("manage started", slog.String("request_id", requestID), slog.String("action", input.Action))

	if input.Action == "" {
		return nil, ManageToolOutput{}, NewInvalidParamsError("action parameter is required")
	}

	res, err := s.service.Manage(ctx, handlers.ManageAction(input.Action), input.IndexID)
	if err != nil {
		s.logger.Error("manage failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, ManageToolOutput{}, MapError(err)
	}

	return nil, ManageToolOutput{
		Success:       res.Success,
		Message:       res.Message,
		Indexes:       res.Indexes,
		Discrepancies: res.Discrepancies,
	}, nil
}

// Serve starts the server with the specified transport. Only stdio is
// implemented; it is the transport the CLI's serve subcommand uses to speak
// MCP with an editor or agent client over its own stdin/stdout.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// Close releases server resources, including the shared embedding backend.
func (s *Server) Close() error {
	return s.service.Close()
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
