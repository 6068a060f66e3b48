package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/termlens/internal/explain"
	"github.com/ziadkadry99/termlens/internal/highlight"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes term explanation tools.
type Server struct {
	svc      *explain.Service
	renderer *highlight.Renderer
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(svc *explain.Service, renderer *highlight.Renderer) *Server {
	s := &Server{
		svc:      svc,
		renderer: renderer,
	}

	s.mcp = server.NewMCPServer(
		"termlens",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(explainTermTool, s.handleExplainTerm)
	s.mcp.AddTool(findTermsTool, s.handleFindTerms)
	s.mcp.AddTool(checkTermTool, s.handleCheckTerm)
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
