package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Fuabioo/gzjson"
	"github.com/Fuabioo/gzjson/internal/cache"
	"github.com/Fuabioo/gzjson/internal/config"
)

const (
	serverName    = "gzjson"
	serverVersion = "0.1.0"
)

// Server wraps the MCP server with gzjson-specific state.
type Server struct {
	mcp   *server.MCPServer
	codec *gzjson.Codec
	docs  *cache.Store
}

// NewServer creates and configures the MCP server with all gzjson tools registered.
func NewServer() (*Server, error) {
	// Load configuration
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get data directory: %w", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	codec := cfg.NewCodec()

	// Parsed documents are cached across tool calls; entries are
	// revalidated against the file's mtime and size on every read.
	docs, err := cache.New(codec, cfg.Cache.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}

	s := &Server{
		codec: codec,
		docs:  docs,
	}

	// Create MCP server
	s.mcp = server.NewMCPServer(serverName, serverVersion)

	// Register all tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// registerTools registers the gzjson MCP tools.
func (s *Server) registerTools() error {
	// gzjson_read
	s.mcp.AddTool(mcp.NewTool("gzjson_read",
		mcp.WithDescription("Reads a gzip-compressed JSON file and returns the document"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the gzip-compressed JSON file")),
		mcp.WithBoolean("pretty",
			mcp.Description("Pretty-print the document (default: false)")),
	), s.handleRead)

	// gzjson_write
	s.mcp.AddTool(mcp.NewTool("gzjson_write",
		mcp.WithDescription("Writes a JSON document to a gzip-compressed file, creating or overwriting it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the destination file")),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The JSON document text to store")),
		mcp.WithBoolean("jsonc",
			mcp.Description("Accept comments and trailing commas in content (default: false)")),
	), s.handleWrite)

	// gzjson_check
	s.mcp.AddTool(mcp.NewTool("gzjson_check",
		mcp.WithDescription("Validates a gzip-compressed JSON file and reports its sizes"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the file to validate")),
	), s.handleCheck)

	return nil
}

// Serve starts the MCP server on stdio transport.
func (s *Server) Serve() error {
	stdioServer := server.NewStdioServer(s.mcp)
	ctx := context.Background()
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("failed to serve MCP: %w", err)
	}
	return nil
}

// Serve creates a new MCP server and starts serving on stdio.
func Serve() error {
	srv, err := NewServer()
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Serve(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
