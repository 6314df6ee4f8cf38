package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"ghactions/internal/config"
	"ghactions/internal/github"
)

// RunDoctor verifies that a token is resolvable and that it is accepted by
// the GitHub API.
func RunDoctor() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	source := "config file"
	if cfg.GitHubToken == "" {
		source = "GITHUB_TOKEN environment variable"
	}
	token := config.ResolveToken("", cfg)
	if token == "" {
		fmt.Fprintln(os.Stderr, "✗ No GitHub token found. Set one with `ghactions config set-token` or export GITHUB_TOKEN.")
		os.Exit(1)
	}
	fmt.Printf("✓ Token resolved from %s\n", source)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := github.NewClient(token).CheckAuth(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "✗ GitHub API rejected the token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ GitHub API reachable, token accepted")
}
