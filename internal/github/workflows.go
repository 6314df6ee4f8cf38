package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DispatchWorkflow fires a workflow_dispatch event. workflowID is either a
// numeric workflow ID or a workflow file name such as "ci.yml".
//
// The endpoint's only documented success shape is 204 with an empty body;
// any other 2xx is surfaced as an unexpected-protocol error so an API
// contract change is distinguishable from an ordinary failure. Exactly one
// network call is made — a blind retry could create a second, unwanted run.
func (c *Client) DispatchWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]string) error {
	const operation = "trigger workflow dispatch"

	body := struct {
		Ref    string            `json:"ref"`
		Inputs map[string]string `json:"inputs,omitempty"`
	}{Ref: ref, Inputs: inputs}

	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches",
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(workflowID))

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return &APIError{
			Kind:      KindUnexpectedProtocol,
			Status:    resp.StatusCode,
			Operation: operation,
			Message:   fmt.Sprintf("expected 204 No Content, got %d", resp.StatusCode),
		}
	default:
		return apiErrorFrom(resp, operation)
	}
}

// ListWorkflowRuns fetches the most recently created runs for a workflow,
// newest first, capped at perPage.
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, perPage int) ([]WorkflowRun, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/runs?per_page=%d",
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(workflowID), perPage)

	var out runsResponse
	if err := c.getJSON(ctx, path, "list workflow runs", &out); err != nil {
		return nil, err
	}
	return out.WorkflowRuns, nil
}

// ListWorkflows enumerates the workflows of a repository. When withDefinitions
// is set, each workflow's raw YAML is fetched via the contents API; a failed
// content fetch leaves Definition empty rather than failing the listing.
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string, withDefinitions bool) ([]Workflow, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows", url.PathEscape(owner), url.PathEscape(repo))

	var out workflowsResponse
	if err := c.getJSON(ctx, path, "list workflows", &out); err != nil {
		return nil, err
	}

	if withDefinitions {
		for i := range out.Workflows {
			def, err := c.fetchFileContent(ctx, owner, repo, out.Workflows[i].Path)
			if err != nil {
				c.log.Warnf("could not fetch definition for %s: %v", out.Workflows[i].Path, err)
				continue
			}
			out.Workflows[i].Definition = def
		}
	}
	return out.Workflows, nil
}

// fetchFileContent retrieves one file via the contents API and decodes it.
func (c *Client) fetchFileContent(ctx context.Context, owner, repo, filePath string) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/contents/%s", url.PathEscape(owner), url.PathEscape(repo), escapePath(filePath))

	var out contentsResponse
	if err := c.getJSON(ctx, path, "fetch file content", &out); err != nil {
		return "", err
	}
	if out.Encoding == "base64" {
		data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(out.Content, "\n", ""))
		if err != nil {
			return "", fmt.Errorf("fetch file content: failed to decode %s: %w", filePath, err)
		}
		return string(data), nil
	}
	return out.Content, nil
}

// escapePath escapes each segment of a slash-separated repo path.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
