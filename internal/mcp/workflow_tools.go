package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ghactions/internal/github"
)

// -- list_workflows --

type listWorkflowsInput struct {
	Owner string `json:"owner" jsonschema:"Repository owner (user or organization)"`
	Repo  string `json:"repo" jsonschema:"Repository name"`
	Token string `json:"token,omitempty" jsonschema:"GitHub token (overrides configured token)"`
}

type listWorkflowsOutput struct {
	Workflows []github.Workflow `json:"workflows"`
}

func listWorkflowsHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listWorkflowsInput) (*mcpsdk.CallToolResult, listWorkflowsOutput, error) {
	if input.Owner == "" || input.Repo == "" {
		return nil, listWorkflowsOutput{}, fmt.Errorf("owner and repo are required")
	}

	client, err := resolveClient(input.Token, "list workflows")
	if err != nil {
		return nil, listWorkflowsOutput{}, fmt.Errorf("Failed to list workflows: %w", err)
	}

	workflows, err := client.ListWorkflows(ctx, input.Owner, input.Repo, true)
	if err != nil {
		return nil, listWorkflowsOutput{}, fmt.Errorf("Failed to list workflows: %w", err)
	}
	if workflows == nil {
		workflows = []github.Workflow{}
	}
	return nil, listWorkflowsOutput{Workflows: workflows}, nil
}

func registerWorkflowTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_workflows",
		Description: "List the GitHub Actions workflows of a repository, including each workflow's raw YAML definition",
	}, listWorkflowsHandler)
}
