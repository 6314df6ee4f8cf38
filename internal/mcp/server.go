package mcpserver

import (
	"context"
	"fmt"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ghactions/internal/config"
	"ghactions/internal/github"
)

// newServer builds the MCP server with all GitHub tools registered.
func newServer(version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "ghactions",
			Version: version,
		},
		nil,
	)

	registerWorkflowTools(server)
	registerActionTools(server)
	registerDispatchTool(server)
	registerReleaseTools(server)

	return server
}

// RunServer starts the MCP server over stdio transport and blocks until the
// client disconnects.
func RunServer(ctx context.Context, version string) error {
	return newServer(version).Run(ctx, &mcpsdk.StdioTransport{})
}

// NewSSEHandler returns an HTTP handler serving the MCP server over SSE,
// for mounting under /mcp/ when serving HTTP.
func NewSSEHandler(version string) http.Handler {
	return mcpsdk.NewSSEHandler(func(r *http.Request) *mcpsdk.Server {
		return newServer(version)
	}, nil)
}

// resolveClient picks the credential for one tool call and builds a client
// for it. The explicit token wins over the persisted config, which wins
// over GITHUB_TOKEN. An unresolvable token is terminal: no network call is
// made and the error carries the missing-credential kind.
func resolveClient(explicitToken, operation string) (*github.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	token := config.ResolveToken(explicitToken, cfg)
	if token == "" {
		return nil, &github.APIError{
			Kind:      github.KindMissingCredential,
			Operation: operation,
			Message:   "no GitHub token resolvable: pass one explicitly, set it in the config, or export GITHUB_TOKEN",
		}
	}
	return newClient(token), nil
}
