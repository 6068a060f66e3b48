package mcp

import "github.com/mark3labs/mcp-go/mcp"

var explainTermTool = mcp.NewTool("explain_term",
	mcp.WithDescription("Explain a technical term in plain, jargon-free language. Answers are cached, so repeated terms are instant."),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("The term to explain, e.g. 'Kubernetes' or 'load balancer'"),
	),
	mcp.WithString("context",
		mcp.Description("Optional passage the term appeared in"),
	),
)

var findTermsTool = mcp.NewTool("find_terms",
	mcp.WithDescription("List the known technical terms that appear in a markdown document. Code blocks, inline code and links are skipped."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Markdown or plain text to scan"),
	),
	mcp.WithString("format",
		mcp.Description("Output format"),
		mcp.Enum("list", "html"),
	),
)

var checkTermTool = mcp.NewTool("check_term",
	mcp.WithDescription("Report whether a term is in the technical term index."),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("The term to check"),
	),
)
