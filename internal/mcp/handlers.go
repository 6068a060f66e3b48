package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleExplainTerm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("term parameter is required"), nil
	}
	passage := request.GetString("context", "")

	res, err := s.svc.Explain(ctx, term, passage)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("explaining %q: %v", term, err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n%s\n", res.Term, res.Explanation)
	if res.Cached {
		sb.WriteString("\n_(cached)_\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleFindTerms(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	if request.GetString("format", "list") == "html" {
		out, err := s.renderer.Render([]byte(text))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rendering: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}

	found := s.renderer.Find([]byte(text))
	if len(found) == 0 {
		return mcp.NewToolResultText("No technical terms found."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d technical terms:\n\n", len(found))
	for _, t := range found {
		fmt.Fprintf(&sb, "- %s\n", t)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleCheckTerm(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("term parameter is required"), nil
	}
	if s.svc.Index().Contains(term) {
		return mcp.NewToolResultText(fmt.Sprintf("%q is a known technical term.", term)), nil
	}
	if s.svc.IsTechnicalTerm(term) {
		return mcp.NewToolResultText(fmt.Sprintf("%q is not in the term index but looks technical.", term)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%q is not in the term index.", term)), nil
}
