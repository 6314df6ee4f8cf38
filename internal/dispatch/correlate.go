package dispatch

import (
	"context"
	"time"

	"ghactions/internal/github"
)

// notYetAvailable is returned when the runs listing is empty after the
// settling window. Dispatch already succeeded at that point, so this is a
// note on a successful result, never an error.
const notYetAvailable = "Run created but not yet available in the API; check the workflow runs list again shortly."

// sentinelActor is used when the API response carries no triggering actor.
const sentinelActor = "API"

// correlate approximates "the run this dispatch just created". GitHub's
// dispatch endpoint returns no run identifier, so this is a temporal
// heuristic: wait for the listing to settle, take the most recent runs, and
// prefer the newest one created within matchWindow of the dispatch moment.
// Concurrent dispatches of the same workflow inside the window can be
// mis-attributed; that is an accepted limitation, not a bug.
//
// Context cancellation here abandons only the report-back. The dispatch has
// already been sent and cannot be undone, so a cancelled correlation still
// yields a successful result carrying a note.
func (d *Dispatcher) correlate(ctx context.Context, opts Options, dispatchedAt time.Time) *Result {
	select {
	case <-time.After(d.Settle):
	case <-ctx.Done():
		return &Result{Note: "Correlation abandoned before the runs list was queried; the dispatch itself was sent."}
	}

	runs, err := d.api.ListWorkflowRuns(ctx, opts.Owner, opts.Repo, opts.WorkflowID, runsPerPage)
	if err != nil {
		d.log.Warnf("could not list runs after dispatch: %v", err)
		return &Result{Note: "Dispatch succeeded but the runs list could not be fetched: " + err.Error()}
	}
	if len(runs) == 0 {
		return &Result{Note: notYetAvailable}
	}

	match := pickCandidate(runs, dispatchedAt)
	if match == nil {
		// Every listed run predates the match window: the new run is not
		// visible yet. Guessing an older run here would mis-attribute, so
		// report that the run is still pending instead.
		return &Result{Note: notYetAvailable}
	}
	return &Result{Run: summarize(match)}
}

// pickCandidate returns the newest run created within the match window of
// dispatchedAt, or nil when none qualifies. The latest created_at wins: when
// dispatches race, the closer-in-time run is the likelier match.
func pickCandidate(runs []github.WorkflowRun, dispatchedAt time.Time) *github.WorkflowRun {
	var best *github.WorkflowRun
	for i := range runs {
		run := &runs[i]
		delta := run.CreatedAt.Sub(dispatchedAt)
		if delta < 0 {
			delta = -delta
		}
		if delta > matchWindow {
			continue
		}
		if best == nil || run.CreatedAt.After(best.CreatedAt) {
			best = run
		}
	}
	return best
}

func summarize(run *github.WorkflowRun) *RunSummary {
	actor := sentinelActor
	if run.TriggeringActor != nil && run.TriggeringActor.Login != "" {
		actor = run.TriggeringActor.Login
	}
	return &RunSummary{
		ID:          run.ID,
		URL:         run.HTMLURL,
		Status:      run.Status,
		Conclusion:  run.Conclusion,
		CreatedAt:   run.CreatedAt,
		TriggeredBy: actor,
	}
}
