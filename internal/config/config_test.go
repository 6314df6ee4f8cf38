package config

import (
	"path/filepath"
	"testing"
)

// useTempConfig redirects ConfigPath into a temp dir for the test.
func useTempConfig(t *testing.T) {
	t.Helper()
	orig := ConfigPath
	ConfigPath = filepath.Join(t.TempDir(), "config.json")
	t.Cleanup(func() { ConfigPath = orig })
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "" || cfg.LogLevel != "" {
		t.Errorf("cfg = %+v, want empty", cfg)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	useTempConfig(t)

	want := &Config{GitHubToken: "ghp_test123", LogLevel: "debug"}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.GitHubToken != want.GitHubToken || got.LogLevel != want.LogLevel {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolveToken_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		cfgToken string
		envToken string
		want     string
	}{
		{"explicit wins over everything", "arg", "cfg", "env", "arg"},
		{"config wins over environment", "", "cfg", "env", "cfg"},
		{"environment as last resort", "", "", "env", "env"},
		{"nothing resolvable", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.envToken)
			cfg := &Config{GitHubToken: tt.cfgToken}
			if got := ResolveToken(tt.explicit, cfg); got != tt.want {
				t.Errorf("ResolveToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveToken_NilConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env")
	if got := ResolveToken("", nil); got != "env" {
		t.Errorf("ResolveToken = %q, want env", got)
	}
}
