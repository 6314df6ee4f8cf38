package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ghactions/internal/github"
)

// -- list_releases --

type listReleasesInput struct {
	Owner string `json:"owner" jsonschema:"Repository owner (user or organization)"`
	Repo  string `json:"repo" jsonschema:"Repository name"`
	Count int    `json:"count,omitempty" jsonschema:"How many releases to fetch (default: 10)"`
	Token string `json:"token,omitempty" jsonschema:"GitHub token (overrides configured token)"`
}

type listReleasesOutput struct {
	Releases []github.Release `json:"releases"`
}

func listReleasesHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listReleasesInput) (*mcpsdk.CallToolResult, listReleasesOutput, error) {
	if input.Owner == "" || input.Repo == "" {
		return nil, listReleasesOutput{}, fmt.Errorf("owner and repo are required")
	}

	client, err := resolveClient(input.Token, "list releases")
	if err != nil {
		return nil, listReleasesOutput{}, fmt.Errorf("Failed to list releases: %w", err)
	}

	releases, err := client.ListReleases(ctx, input.Owner, input.Repo, input.Count)
	if err != nil {
		return nil, listReleasesOutput{}, fmt.Errorf("Failed to list releases: %w", err)
	}
	if releases == nil {
		releases = []github.Release{}
	}
	return nil, listReleasesOutput{Releases: releases}, nil
}

func registerReleaseTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_releases",
		Description: "List the most recent releases of a repository (tag, name, draft/prerelease flags, publish date)",
	}, listReleasesHandler)
}
