package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ghactions/internal/dispatch"
	"ghactions/internal/github"
)

// -- trigger_workflow --

type triggerWorkflowInput struct {
	Owner      string            `json:"owner" jsonschema:"Repository owner (user or organization)"`
	Repo       string            `json:"repo" jsonschema:"Repository name"`
	WorkflowID string            `json:"workflow_id" jsonschema:"Workflow file name (e.g. ci.yml) or numeric workflow ID"`
	Ref        string            `json:"ref,omitempty" jsonschema:"Branch or tag to run on (default: main)"`
	Inputs     map[string]string `json:"inputs,omitempty" jsonschema:"workflow_dispatch inputs"`
	Token      string            `json:"token,omitempty" jsonschema:"GitHub token (overrides configured token)"`
}

type triggerWorkflowOutput struct {
	Message string               `json:"message"`
	Run     *dispatch.RunSummary `json:"run,omitempty"`
	Note    string               `json:"note,omitempty"`
}

// Test seams: tests point the client at an httptest server and shrink the
// correlator's settling window.
var (
	newClient     = github.NewClient
	newDispatcher = dispatch.New
)

func triggerWorkflowHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input triggerWorkflowInput) (*mcpsdk.CallToolResult, triggerWorkflowOutput, error) {
	if input.Owner == "" || input.Repo == "" || input.WorkflowID == "" {
		return nil, triggerWorkflowOutput{}, fmt.Errorf("owner, repo and workflow_id are required")
	}

	client, err := resolveClient(input.Token, "trigger workflow dispatch")
	if err != nil {
		return nil, triggerWorkflowOutput{}, fmt.Errorf("Failed to trigger GitHub Action: %w", err)
	}

	result, err := newDispatcher(client).Dispatch(ctx, dispatch.Options{
		Owner:      input.Owner,
		Repo:       input.Repo,
		WorkflowID: input.WorkflowID,
		Ref:        input.Ref,
		Inputs:     input.Inputs,
	})
	if err != nil {
		return nil, triggerWorkflowOutput{}, fmt.Errorf("Failed to trigger GitHub Action: %w", err)
	}

	return nil, triggerWorkflowOutput{
		Message: result.Message,
		Run:     result.Run,
		Note:    result.Note,
	}, nil
}

func registerDispatchTool(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: "trigger_workflow",
		Description: `Trigger a GitHub Actions workflow via workflow_dispatch and report the run it created.

GitHub's dispatch endpoint returns no run identifier, so after triggering this
tool waits a few seconds and correlates the newest recently-created run with
the dispatch. Under concurrent dispatches of the same workflow the attribution
is best-effort. When no run is visible yet the result carries a note instead
of a run; the dispatch still succeeded — do not re-trigger.`,
	}, triggerWorkflowHandler)
}
