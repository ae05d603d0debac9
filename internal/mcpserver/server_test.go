package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/summarizer"
	"github.com/starford/moodlog/internal/testutil"
	"github.com/starford/moodlog/internal/tracker"
)

var testNow = time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir, store := testutil.TestJournal(t)
	db := testutil.TestDB(t)
	svc := tracker.NewService(store, db,
		tracker.WithClock(func() time.Time { return testNow }),
		tracker.WithSummarizer(summarizer.Func(func(_ context.Context, mode models.Mode, _ string) (string, error) {
			return "Summary (" + string(mode) + ")", nil
		})))
	return New(svc, "test"), dir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so handlers are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "parse_daily_logs":
		result, err = srv.parseDailyLogs(ctx, req)
	case "parse_weekly_reviews":
		result, err = srv.parseWeeklyReviews(ctx, req)
	case "select_for_analysis":
		result, err = srv.selectForAnalysis(ctx, req)
	case "format_for_summary":
		result, err = srv.formatForSummary(ctx, req)
	case "list_documents":
		result, err = srv.listDocuments(ctx, req)
	case "read_document":
		result, err = srv.readDocument(ctx, req)
	case "search_entries":
		result, err = srv.searchEntries(ctx, req)
	case "analyze_document":
		result, err = srv.analyzeDocument(ctx, req)
	case "get_log_format":
		result, err = srv.getLogFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestParseDailyLogs(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "parse_daily_logs", map[string]any{"text": testutil.SampleLog})
	if r.IsError {
		t.Fatalf("error: %s", resultText(r))
	}
	var logs []models.DailyLogEntry
	if err := json.Unmarshal([]byte(resultText(r)), &logs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(logs) != 2 || logs[0].DayOfWeek != "Monday" {
		t.Errorf("logs = %+v", logs)
	}
}

func TestParseWeeklyReviews(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "parse_weekly_reviews", map[string]any{"text": "Week of March 6-12, 2023\nOverall mood: 7/10\n"})
	var reviews []models.WeeklyReviewEntry
	_ = json.Unmarshal([]byte(resultText(r)), &reviews)
	if len(reviews) != 1 || reviews[0].Week != "March 6-12, 2023" {
		t.Errorf("reviews = %+v", reviews)
	}
}

func TestParse_MissingText(t *testing.T) {
	srv, _ := testServer(t)
	if r := callTool(t, srv, "parse_daily_logs", map[string]any{}); !r.IsError {
		t.Error("expected error for missing text")
	}
}

func TestSelectForAnalysis(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "select_for_analysis", map[string]any{"text": testutil.SampleLog, "mode": "monthly"})
	var w models.AnalysisWindow
	if err := json.Unmarshal([]byte(resultText(r)), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Mode != models.ModeMonthly || len(w.DailyLogs) != 2 {
		t.Errorf("window = %+v", w)
	}

	if r := callTool(t, srv, "select_for_analysis", map[string]any{"text": "x", "mode": "daily"}); !r.IsError {
		t.Error("expected error for unknown mode")
	}
}

func TestFormatForSummary(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "format_for_summary", map[string]any{"text": testutil.SampleLog})
	if !strings.HasPrefix(resultText(r), "Daily Logs:\n") {
		t.Errorf("format = %q", resultText(r))
	}

	r = callTool(t, srv, "format_for_summary", map[string]any{"text": ""})
	if resultText(r) != "no entries in the analysis window" {
		t.Errorf("empty format = %q", resultText(r))
	}
}

func TestDocumentsAndAnalysis(t *testing.T) {
	srv, dir := testServer(t)
	ctx := context.Background()
	testutil.WriteDocument(t, dir, "journal.txt", testutil.SampleLog)
	if _, err := srv.svc.UpdateDocument(ctx, "journal.txt", []byte(testutil.SampleLog), ""); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "list_documents", map[string]any{})
	if !strings.Contains(resultText(r), `"path": "journal.txt"`) {
		t.Errorf("list = %q", resultText(r))
	}

	r = callTool(t, srv, "read_document", map[string]any{"path": "journal.txt"})
	if resultText(r) != testutil.SampleLog {
		t.Errorf("read = %q", resultText(r))
	}

	r = callTool(t, srv, "search_entries", map[string]any{"query": "report"})
	if r.IsError || !strings.Contains(resultText(r), "March 6, 2023") {
		t.Errorf("search = %q", resultText(r))
	}

	r = callTool(t, srv, "analyze_document", map[string]any{"path": "journal.txt", "type": "weekly", "write_back": true})
	if r.IsError {
		t.Fatalf("analyze error: %s", resultText(r))
	}
	var out []models.Analysis
	_ = json.Unmarshal([]byte(resultText(r)), &out)
	if len(out) != 1 || out[0].Summary != "Summary (weekly)" || !out[0].Written {
		t.Errorf("analyses = %+v", out)
	}
}

func TestReadDocumentMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_document", map[string]any{"path": "nope.txt"})
	if !r.IsError || resultText(r) != "not found: nope.txt" {
		t.Errorf("result = %+v", r)
	}
}

func TestLogFormat(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_log_format", map[string]any{})
	if resultText(r) != LogFormatContract {
		t.Error("tool should return the format contract")
	}

	contents, err := srv.readLogFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != logFormatURI || tc.Text != LogFormatContract {
		t.Errorf("resource = %+v", contents[0])
	}
}
