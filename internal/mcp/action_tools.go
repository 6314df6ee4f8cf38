package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ghactions/internal/github"
)

// -- get_action_metadata --

type getActionMetadataInput struct {
	Owner string `json:"owner" jsonschema:"Action repository owner"`
	Repo  string `json:"repo" jsonschema:"Action repository name"`
	Path  string `json:"path,omitempty" jsonschema:"Subdirectory of the action for monorepos (default: repository root)"`
	Token string `json:"token,omitempty" jsonschema:"GitHub token (overrides configured token)"`
}

type getActionMetadataOutput struct {
	Metadata *github.ActionMetadata `json:"metadata"`
}

func getActionMetadataHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input getActionMetadataInput) (*mcpsdk.CallToolResult, getActionMetadataOutput, error) {
	if input.Owner == "" || input.Repo == "" {
		return nil, getActionMetadataOutput{}, fmt.Errorf("owner and repo are required")
	}

	client, err := resolveClient(input.Token, "fetch action metadata")
	if err != nil {
		return nil, getActionMetadataOutput{}, fmt.Errorf("Failed to fetch action metadata: %w", err)
	}

	meta, err := client.GetActionMetadata(ctx, input.Owner, input.Repo, input.Path)
	if err != nil {
		return nil, getActionMetadataOutput{}, fmt.Errorf("Failed to fetch action metadata: %w", err)
	}
	return nil, getActionMetadataOutput{Metadata: meta}, nil
}

func registerActionTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_action_metadata",
		Description: "Fetch the action.yml of a reusable GitHub Action and return its normalized metadata (inputs, runtime, branding)",
	}, getActionMetadataHandler)
}
