// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes moodlog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/moodlog/internal/analysis"
	"github.com/starford/moodlog/internal/apperr"
	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/parser"
	"github.com/starford/moodlog/internal/tracker"
)

const logFormatURI = "moodlog://log-format"

// Server wraps the MCP server with moodlog tools.
type Server struct {
	mcp *server.MCPServer
	svc *tracker.Service
}

// New creates a new MCP server with all moodlog tools registered.
func New(svc *tracker.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"moodlog",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("parse_daily_logs",
		mcp.WithDescription("Extract daily mood/productivity records from journal text. "+
			"Read the format via get_log_format or the "+logFormatURI+" resource."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw journal text")),
	), s.parseDailyLogs)

	s.mcp.AddTool(mcp.NewTool("parse_weekly_reviews",
		mcp.WithDescription("Extract weekly review records from journal text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw journal text")),
	), s.parseWeeklyReviews)

	s.mcp.AddTool(mcp.NewTool("select_for_analysis",
		mcp.WithDescription("Select the records of the trailing 7-day (weekly) or 30-day (monthly) window."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw journal text")),
		mcp.WithString("mode", mcp.Description("weekly (default) or monthly"), mcp.Enum("weekly", "monthly")),
	), s.selectForAnalysis)

	s.mcp.AddTool(mcp.NewTool("format_for_summary",
		mcp.WithDescription("Render the selected window as the plain-text input used for summaries."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw journal text")),
		mcp.WithString("mode", mcp.Description("weekly (default) or monthly"), mcp.Enum("weekly", "monthly")),
	), s.formatForSummary)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List indexed journal documents with entry counts."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the full text of a journal document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. 2023/march.txt)")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Full-text search through daily notes, achievements and challenges."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("analyze_document",
		mcp.WithDescription("Summarize the recent entries of a journal document with the configured model."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document")),
		mcp.WithString("type", mcp.Description("weekly (default), monthly or both"), mcp.Enum("weekly", "monthly", "both")),
		mcp.WithBoolean("write_back", mcp.Description("Append the analysis to the document")),
	), s.analyzeDocument)

	s.mcp.AddTool(mcp.NewTool("get_log_format",
		mcp.WithDescription("Returns the journal format the parser understands. "+
			"Call this before writing entries to ensure they are recognised."),
	), s.getLogFormat)

	s.mcp.AddResource(
		mcp.NewResource(logFormatURI, "Journal Format",
			mcp.WithResourceDescription("Layout of daily logs and weekly reviews."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLogFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func modeArg(req mcp.CallToolRequest) (models.Mode, error) {
	return models.ParseMode(req.GetString("mode", string(models.ModeWeekly)))
}

func (s *Server) parseDailyLogs(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(parser.ParseDailyLogs(text)), nil
}

func (s *Server) parseWeeklyReviews(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(parser.ParseWeeklyReviews(text)), nil
}

func (s *Server) selectForAnalysis(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := modeArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.svc.Select(text, mode)), nil
}

func (s *Server) formatForSummary(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := modeArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := analysis.FormatForSummary(s.svc.Select(text, mode), mode)
	if out == "" {
		return mcp.NewToolResultText("no entries in the analysis window"), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) listDocuments(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.svc.Documents(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(docs), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.Document(ctx, path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc.Content), nil
}

func (s *Server) searchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results), nil
}

func (s *Server) analyzeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.Analyze(ctx, tracker.AnalyzeRequest{
		Path:      path,
		Type:      req.GetString("type", string(models.ModeWeekly)),
		WriteBack: req.GetBool("write_back", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out), nil
}

func (s *Server) getLogFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(LogFormatContract), nil
}

func (s *Server) readLogFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      logFormatURI,
			MIMEType: "text/markdown",
			Text:     LogFormatContract,
		},
	}, nil
}
