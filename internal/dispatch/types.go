package dispatch

import "time"

// Options configures one workflow dispatch request.
type Options struct {
	Owner      string            // Repository owner
	Repo       string            // Repository name
	WorkflowID string            // Numeric workflow ID or file name, e.g. "ci.yml"
	Ref        string            // Branch or tag (default "main")
	Inputs     map[string]string // workflow_dispatch inputs (default empty)
}

// RunSummary describes the run the correlator attributed to a dispatch.
type RunSummary struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	Conclusion  string    `json:"conclusion,omitempty"` // empty while in progress
	CreatedAt   time.Time `json:"createdAt"`
	TriggeredBy string    `json:"triggeredBy"`
}

// Result is the outcome of a successful dispatch. Exactly one of Run and
// Note is set: Run when a candidate run was located, Note when run data was
// not yet available. Either way the dispatch itself succeeded — a caller
// must not re-trigger just because no run could be confirmed.
type Result struct {
	Message string      `json:"message"`
	Run     *RunSummary `json:"run,omitempty"`
	Note    string      `json:"note,omitempty"`
}
