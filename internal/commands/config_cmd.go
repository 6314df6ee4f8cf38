package commands

import (
	"fmt"
	"os"

	"ghactions/internal/config"
)

// RunConfigShow prints the current configuration with the token redacted.
func RunConfigShow() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config file: %s\n", config.ConfigPath)
	fmt.Printf("Token:       %s\n", redact(cfg.GitHubToken))
	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	fmt.Printf("Log level:   %s\n", level)
}

// RunConfigSetToken persists the fallback GitHub token.
func RunConfigSetToken(token string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	cfg.GitHubToken = token
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Token saved to %s\n", config.ConfigPath)
}

// redact keeps just enough of a token to recognize it.
func redact(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
