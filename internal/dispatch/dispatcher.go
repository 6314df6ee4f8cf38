package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ghactions/internal/github"
	"ghactions/internal/logger"
)

const (
	// successMessage is the fixed message wrapped around every successful
	// dispatch result.
	successMessage = "Workflow dispatch event triggered successfully"
	// settleDelay is how long the correlator waits before listing runs.
	// Runs are not guaranteed to be visible immediately after dispatch;
	// 3s trades responsiveness against listing staleness.
	settleDelay = 3 * time.Second
	// matchWindow bounds how far a run's created_at may sit from the moment
	// of dispatch and still count as a candidate. Covers clock skew plus
	// queueing delay.
	matchWindow = 10 * time.Second
	// runsPerPage is how many recent runs the correlator inspects.
	runsPerPage = 5
)

// API is the slice of the GitHub client the dispatcher needs.
type API interface {
	DispatchWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]string) error
	ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, perPage int) ([]github.WorkflowRun, error)
}

// Dispatcher fires workflow_dispatch events and correlates the resulting
// run. It is stateless beyond its configuration; construct one per
// invocation or share freely.
type Dispatcher struct {
	api API
	// Settle overrides settleDelay. Tests shrink it to keep runs fast.
	Settle time.Duration

	now func() time.Time
	log *logger.Entry
}

// New creates a Dispatcher on the given API client.
func New(api API) *Dispatcher {
	return &Dispatcher{
		api:    api,
		Settle: settleDelay,
		now:    time.Now,
		log:    logger.Named("dispatch"),
	}
}

// Dispatch fires the workflow_dispatch event and, on success, hands off to
// the correlator. The dispatch call is made exactly once: workflow_dispatch
// is not safe to retry blindly, a second call could create a second run.
func (d *Dispatcher) Dispatch(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Ref == "" {
		opts.Ref = "main"
	}

	id := uuid.NewString()
	log := d.log.WithFields(logger.Fields{
		"invocation": id,
		"workflow":   opts.WorkflowID,
		"repo":       opts.Owner + "/" + opts.Repo,
	})

	log.Infof("dispatching on ref %s with %d inputs", opts.Ref, len(opts.Inputs))
	dispatchedAt := d.now()
	if err := d.api.DispatchWorkflow(ctx, opts.Owner, opts.Repo, opts.WorkflowID, opts.Ref, opts.Inputs); err != nil {
		log.Warnf("dispatch failed: %v", err)
		return nil, err
	}

	result := d.correlate(ctx, opts, dispatchedAt)
	result.Message = successMessage
	if result.Run != nil {
		log.Infof("correlated run %d (%s)", result.Run.ID, result.Run.Status)
	} else {
		log.Info("no run correlated yet")
	}
	return result, nil
}

func (o Options) validate() error {
	if o.Owner == "" || o.Repo == "" || o.WorkflowID == "" {
		return fmt.Errorf("owner, repo and workflowId are required")
	}
	return nil
}
