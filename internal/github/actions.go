package github

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// actionFiles are the metadata file names GitHub recognizes, in lookup order.
var actionFiles = []string{"action.yml", "action.yaml"}

// GetActionMetadata fetches and normalizes the metadata file of a reusable
// action. path selects a subdirectory for monorepo actions; empty means the
// repository root. action.yml is tried first, then action.yaml.
func (c *Client) GetActionMetadata(ctx context.Context, owner, repo, path string) (*ActionMetadata, error) {
	const operation = "fetch action metadata"

	var lastErr error
	for _, name := range actionFiles {
		filePath := name
		if path != "" {
			filePath = path + "/" + name
		}
		raw, err := c.fetchFileContent(ctx, owner, repo, filePath)
		if err != nil {
			if IsKind(err, KindNotFoundOrForbidden) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		return parseActionMetadata(raw, operation)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%s: %w", operation, lastErr)
	}
	return nil, fmt.Errorf("%s: no action.yml or action.yaml found", operation)
}

// parseActionMetadata normalizes raw action YAML. Input "required" fields may
// appear as booleans or strings in the wild, so inputs are decoded loosely
// before projection.
func parseActionMetadata(raw, operation string) (*ActionMetadata, error) {
	var loose struct {
		Name        string `yaml:"name"`
		Author      string `yaml:"author"`
		Description string `yaml:"description"`
		Inputs      map[string]struct {
			Description string `yaml:"description"`
			Required    any    `yaml:"required"`
			Default     any    `yaml:"default"`
		} `yaml:"inputs"`
		Runs     ActionRuns      `yaml:"runs"`
		Branding *ActionBranding `yaml:"branding"`
	}
	if err := yaml.Unmarshal([]byte(raw), &loose); err != nil {
		return nil, fmt.Errorf("%s: invalid action YAML: %w", operation, err)
	}

	meta := &ActionMetadata{
		Name:        loose.Name,
		Author:      loose.Author,
		Description: loose.Description,
		Runs:        loose.Runs,
		Branding:    loose.Branding,
	}
	if len(loose.Inputs) > 0 {
		meta.Inputs = make(map[string]ActionInput, len(loose.Inputs))
		for name, in := range loose.Inputs {
			meta.Inputs[name] = ActionInput{
				Description: in.Description,
				Required:    truthy(in.Required),
				Default:     stringify(in.Default),
			}
		}
	}
	return meta, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
