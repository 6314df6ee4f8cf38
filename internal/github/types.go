package github

import "time"

// Workflow is one entry from the workflows listing endpoint.
type Workflow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
	URL   string `json:"html_url"`
	// Definition holds the raw YAML of the workflow file, fetched via the
	// contents API. Empty when the fetch failed (listing still succeeds).
	Definition string `json:"definition,omitempty"`
}

type workflowsResponse struct {
	TotalCount int        `json:"total_count"`
	Workflows  []Workflow `json:"workflows"`
}

// WorkflowRun is one entry from the workflow runs listing endpoint.
type WorkflowRun struct {
	ID              int64     `json:"id"`
	HTMLURL         string    `json:"html_url"`
	Status          string    `json:"status"`
	Conclusion      string    `json:"conclusion"`
	CreatedAt       time.Time `json:"created_at"`
	TriggeringActor *Actor    `json:"triggering_actor"`
}

// Actor identifies the user that triggered a run.
type Actor struct {
	Login string `json:"login"`
}

type runsResponse struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// Release is one entry from the releases listing endpoint.
type Release struct {
	ID          int64     `json:"id"`
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Body        string    `json:"body,omitempty"`
}

// contentsResponse is the shape of the repository contents endpoint for a
// single file. Content is base64 when encoding is "base64".
type contentsResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	Path     string `json:"path"`
}

// ActionInput describes one input of a reusable action.
type ActionInput struct {
	Description string `json:"description,omitempty" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
	Default     string `json:"default,omitempty" yaml:"default"`
}

// ActionRuns describes the runtime of a reusable action.
type ActionRuns struct {
	Using string `json:"using" yaml:"using"`
	Main  string `json:"main,omitempty" yaml:"main"`
	Image string `json:"image,omitempty" yaml:"image"`
}

// ActionBranding describes marketplace branding of a reusable action.
type ActionBranding struct {
	Icon  string `json:"icon,omitempty" yaml:"icon"`
	Color string `json:"color,omitempty" yaml:"color"`
}

// ActionMetadata is the normalized form of an action.yml file.
type ActionMetadata struct {
	Name        string                 `json:"name" yaml:"name"`
	Author      string                 `json:"author,omitempty" yaml:"author"`
	Description string                 `json:"description,omitempty" yaml:"description"`
	Inputs      map[string]ActionInput `json:"inputs,omitempty" yaml:"inputs"`
	Runs        ActionRuns             `json:"runs" yaml:"runs"`
	Branding    *ActionBranding        `json:"branding,omitempty" yaml:"branding"`
}

// apiErrorBody is GitHub's standard error response body.
type apiErrorBody struct {
	Message string `json:"message"`
}
