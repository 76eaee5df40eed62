// Package core implements the claude-mem bootstrap pipeline.
// It has zero UI dependencies and is independently testable.
package core

// Outcome classifies how a step finished.
type Outcome string

const (
	// OutcomeOK means the step did its work.
	OutcomeOK Outcome = "ok"
	// OutcomeAlreadySatisfied means the step found nothing left to do.
	OutcomeAlreadySatisfied Outcome = "already-satisfied"
	// OutcomeSkipped means the step was disabled for this run.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeWarning means the step ran into a problem the pipeline can live with.
	OutcomeWarning Outcome = "warning"
	// OutcomeFailed means the step could not do its work.
	OutcomeFailed Outcome = "failed"
)

// Policy decides what a failed outcome does to the rest of the pipeline.
type Policy string

const (
	// PolicyFatal aborts the run on failure; later steps never execute.
	PolicyFatal Policy = "fatal"
	// PolicyAdvisory records the failure in the report and continues.
	PolicyAdvisory Policy = "advisory"
)

// Result is the outcome of running a single step.
type Result struct {
	Outcome Outcome
	Detail  string // human-readable context: version strings, paths, hints
	Err     error  // set for warning and failed outcomes
}

func resultOK(detail string) Result {
	return Result{Outcome: OutcomeOK, Detail: detail}
}

func resultSatisfied(detail string) Result {
	return Result{Outcome: OutcomeAlreadySatisfied, Detail: detail}
}

func resultSkipped(detail string) Result {
	return Result{Outcome: OutcomeSkipped, Detail: detail}
}

func resultWarning(detail string, err error) Result {
	return Result{Outcome: OutcomeWarning, Detail: detail, Err: err}
}

func resultFailed(err error) Result {
	return Result{Outcome: OutcomeFailed, Err: err}
}

// Step is one unit of the bootstrap pipeline. Steps are idempotent: a step
// whose work is already done reports OutcomeAlreadySatisfied and leaves the
// filesystem untouched.
type Step struct {
	Name   string
	Policy Policy
	Run    func(*Context) Result
}

// StepReport pairs a step name with its result.
type StepReport struct {
	Name   string
	Result Result
}

// Report is the ordered record of one pipeline run.
type Report struct {
	Steps   []StepReport
	Aborted bool // a fatal step failed and later steps never ran
}

// Failed reports whether the run was aborted by a fatal step.
func (r *Report) Failed() bool {
	return r.Aborted
}

// Warnings counts the advisory problems recorded during the run.
func (r *Report) Warnings() int {
	n := 0
	for _, s := range r.Steps {
		if s.Result.Outcome == OutcomeWarning {
			n++
		}
	}
	return n
}
