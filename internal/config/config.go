package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persisted server configuration.
type Config struct {
	// GitHubToken is the process-wide fallback credential, used when a tool
	// call does not carry an explicit token.
	GitHubToken string `json:"github_token,omitempty"`
	// LogLevel selects the logrus level ("debug", "info", ...).
	LogLevel string `json:"log_level,omitempty"`
}

var ConfigPath string

func init() {
	// A config.json in the working directory takes precedence over the
	// user-level file, mirroring per-project overrides.
	pwd, _ := os.Getwd()
	projectConfig := filepath.Join(pwd, "config.json")
	if _, err := os.Stat(projectConfig); err == nil {
		ConfigPath = projectConfig
	} else {
		homeDir, _ := os.UserHomeDir()
		ConfigPath = filepath.Join(homeDir, ".ghactions", "config.json")
	}
}

// Load reads the config file. A missing file yields an empty config, not an
// error — the token may still come from the environment.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config file, creating its directory if needed.
func Save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0600)
}

// ResolveToken picks the credential for one tool invocation. Precedence:
// explicit per-call token, then the persisted fallback, then GITHUB_TOKEN.
// An empty result means no credential is resolvable; the caller must treat
// that as terminal before making any network call.
func ResolveToken(explicit string, cfg *Config) string {
	if explicit != "" {
		return explicit
	}
	if cfg != nil && cfg.GitHubToken != "" {
		return cfg.GitHubToken
	}
	return os.Getenv("GITHUB_TOKEN")
}
