package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ghactions/internal/config"
	"ghactions/internal/dispatch"
	"ghactions/internal/github"
)

// setupTestServer creates an MCP server+client pair connected via in-memory
// transport, with the GitHub client pointed at the given fake API and the
// correlator's settling window shrunk.
func setupTestServer(t *testing.T, apiURL string) *mcpsdk.ClientSession {
	t.Helper()

	// Isolate config and environment so only the explicit token resolves.
	origPath := config.ConfigPath
	config.ConfigPath = filepath.Join(t.TempDir(), "config.json")
	t.Setenv("GITHUB_TOKEN", "")

	origNewClient, origNewDispatcher := newClient, newDispatcher
	newClient = func(token string) *github.Client {
		c := github.NewClient(token)
		if apiURL != "" {
			c.SetBaseURL(apiURL)
		}
		return c
	}
	newDispatcher = func(api dispatch.API) *dispatch.Dispatcher {
		d := dispatch.New(api)
		d.Settle = 10 * time.Millisecond
		return d
	}

	server := newServer("0.0.1-test")
	ct, st := mcpsdk.NewInMemoryTransports()

	ctx := context.Background()
	ss, err := server.Connect(ctx, st, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}

	t.Cleanup(func() {
		cs.Close()
		ss.Close()
		newClient, newDispatcher = origNewClient, origNewDispatcher
		config.ConfigPath = origPath
	})

	return cs
}

// callTool calls a tool and returns the unmarshaled JSON content from the
// first TextContent block.
func callTool(t *testing.T, cs *mcpsdk.ClientSession, name string, args any) map[string]any {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) returned tool error: %v", name, result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcpsdk.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): content is %T, want *TextContent", name, result.Content[0])
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &m); err != nil {
		t.Fatalf("CallTool(%s): unmarshal response: %v\nraw: %s", name, err, tc.Text)
	}
	return m
}

// callToolExpectError calls a tool expecting a failure and returns the error text.
func callToolExpectError(t *testing.T, cs *mcpsdk.ClientSession, name string, args any) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return err.Error()
	}
	if !result.IsError {
		t.Fatalf("CallTool(%s): expected error, got success", name)
	}
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*mcpsdk.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestE2E_TriggerWorkflowCorrelatesRun(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/dispatches"):
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/runs"):
			created := time.Now().UTC().Add(2 * time.Second).Format(time.RFC3339)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"total_count": 1, "workflow_runs": [
				{"id": 42, "html_url": "https://example.com/runs/42", "status": "queued",
				 "created_at": %q, "triggering_actor": {"login": "octocat"}}
			]}`, created)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cs := setupTestServer(t, srv.URL)

	out := callTool(t, cs, "trigger_workflow", map[string]any{
		"owner":       "octo",
		"repo":        "app",
		"workflow_id": "ci.yml",
		"ref":         "main",
		"inputs":      map[string]string{"environment": "staging"},
		"token":       "test-token",
	})

	if got := out["message"]; got != "Workflow dispatch event triggered successfully" {
		t.Errorf("message = %v", got)
	}
	runObj, ok := out["run"].(map[string]any)
	if !ok {
		t.Fatalf("run missing in output: %v", out)
	}
	if got := runObj["id"]; got != float64(42) {
		t.Errorf("run.id = %v, want 42", got)
	}
	if got := runObj["triggeredBy"]; got != "octocat" {
		t.Errorf("run.triggeredBy = %v", got)
	}
}

func TestE2E_TriggerWorkflowMissingTokenMakesNoNetworkCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cs := setupTestServer(t, srv.URL)

	errText := callToolExpectError(t, cs, "trigger_workflow", map[string]any{
		"owner":       "octo",
		"repo":        "app",
		"workflow_id": "ci.yml",
	})
	if !strings.Contains(errText, "Failed to trigger GitHub Action") {
		t.Errorf("error text = %q, want the operation prefix", errText)
	}
	if !strings.Contains(errText, "token") {
		t.Errorf("error text = %q, want a token hint", errText)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("network calls = %d, want 0", calls)
	}
}

func TestE2E_TriggerWorkflowDispatch404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	cs := setupTestServer(t, srv.URL)

	errText := callToolExpectError(t, cs, "trigger_workflow", map[string]any{
		"owner":       "octo",
		"repo":        "app",
		"workflow_id": "missing.yml",
		"token":       "test-token",
	})
	if !strings.Contains(errText, "Failed to trigger GitHub Action") {
		t.Errorf("error text = %q, want operation prefix", errText)
	}
	if !strings.Contains(errText, "Not Found") {
		t.Errorf("error text = %q, want provider message embedded", errText)
	}
}

func TestE2E_ListWorkflows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/actions/workflows"):
			_, _ = w.Write([]byte(`{"total_count": 1, "workflows": [
				{"id": 7, "name": "CI", "path": ".github/workflows/ci.yml", "state": "active", "html_url": "u"}
			]}`))
		case strings.Contains(r.URL.Path, "/contents/"):
			_, _ = w.Write([]byte(`{"type": "file", "encoding": "base64", "content": "bmFtZTogQ0kK", "path": ".github/workflows/ci.yml"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cs := setupTestServer(t, srv.URL)

	out := callTool(t, cs, "list_workflows", map[string]any{
		"owner": "octo",
		"repo":  "app",
		"token": "test-token",
	})

	workflows, ok := out["workflows"].([]any)
	if !ok || len(workflows) != 1 {
		t.Fatalf("workflows = %v", out["workflows"])
	}
	wf := workflows[0].(map[string]any)
	if wf["name"] != "CI" {
		t.Errorf("workflow name = %v", wf["name"])
	}
	if wf["definition"] != "name: CI\n" {
		t.Errorf("definition = %q", wf["definition"])
	}
}

func TestE2E_ListReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "tag_name": "v2.0.0", "name": "Two", "draft": false,
			"prerelease": false, "published_at": "2026-08-01T00:00:00Z", "html_url": "u"}]`))
	}))
	defer srv.Close()

	cs := setupTestServer(t, srv.URL)

	out := callTool(t, cs, "list_releases", map[string]any{
		"owner": "octo",
		"repo":  "app",
		"token": "test-token",
	})

	releases, ok := out["releases"].([]any)
	if !ok || len(releases) != 1 {
		t.Fatalf("releases = %v", out["releases"])
	}
	if rel := releases[0].(map[string]any); rel["tag_name"] != "v2.0.0" {
		t.Errorf("tag = %v", rel["tag_name"])
	}
}

func TestE2E_GetActionMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/contents/action.yml") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		// base64 of "name: Demo\nruns:\n  using: node20\n"
		_, _ = w.Write([]byte(`{"type": "file", "encoding": "base64",
			"content": "bmFtZTogRGVtbwpydW5zOgogIHVzaW5nOiBub2RlMjAK", "path": "action.yml"}`))
	}))
	defer srv.Close()

	cs := setupTestServer(t, srv.URL)

	out := callTool(t, cs, "get_action_metadata", map[string]any{
		"owner": "octo",
		"repo":  "setup-demo",
		"token": "test-token",
	})

	meta, ok := out["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata missing: %v", out)
	}
	if meta["name"] != "Demo" {
		t.Errorf("metadata.name = %v", meta["name"])
	}
	runs := meta["runs"].(map[string]any)
	if runs["using"] != "node20" {
		t.Errorf("runs.using = %v", runs["using"])
	}
}
