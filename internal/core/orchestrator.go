package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// StepObserver receives progress callbacks while the pipeline runs.
type StepObserver interface {
	StepStarted(ordinal int, name string)
	StepFinished(ordinal int, name string, res Result)
}

// Pipeline returns the fixed, ordered bootstrap sequence. The dependency
// install, build, and sync sub-steps are surfaced as their own entries so
// the report shows where a build aborted.
func Pipeline() []Step {
	return []Step{
		{Name: "tools", Policy: PolicyFatal, Run: EnsureTools},
		{Name: "shell-env", Policy: PolicyAdvisory, Run: ConfigureShellEnv},
		{Name: "layout", Policy: PolicyFatal, Run: ProvisionLayout},
		{Name: "marketplace", Policy: PolicyAdvisory, Run: RegisterMarketplace},
		{Name: "dependencies", Policy: PolicyFatal, Run: InstallDependencies},
		{Name: "build", Policy: PolicyFatal, Run: BuildPlugin},
		{Name: "sync", Policy: PolicyFatal, Run: SyncMarketplace},
		{Name: "prewarm", Policy: PolicyAdvisory, Run: PrewarmVectorDB},
		{Name: "worker", Policy: PolicyAdvisory, Run: LaunchWorker},
		{Name: "verify", Policy: PolicyAdvisory, Run: VerifyStep},
	}
}

// Orchestrator runs the pipeline strictly in order, one step at a time. A
// failed fatal step aborts the run immediately; advisory problems are
// carried into the report and never stop the sequence. Because every step is
// idempotent, an aborted run needs no rollback: re-running continues from
// wherever it left off.
type Orchestrator struct {
	ctx      *Context
	steps    []Step
	observer StepObserver
}

// NewOrchestrator creates an Orchestrator over the standard pipeline.
func NewOrchestrator(ctx *Context) *Orchestrator {
	return &Orchestrator{ctx: ctx, steps: Pipeline()}
}

// SetObserver registers a progress observer. Must be called before Run.
func (o *Orchestrator) SetObserver(obs StepObserver) {
	o.observer = obs
}

// StepNames returns the pipeline's step names in execution order.
func (o *Orchestrator) StepNames() []string {
	names := make([]string, len(o.steps))
	for i, s := range o.steps {
		names[i] = s.Name
	}
	return names
}

// Run executes the pipeline and returns its report. The error is non-nil
// only when a fatal step failed; it carries that step's raw error.
func (o *Orchestrator) Run() (*Report, error) {
	report := &Report{}
	for i, step := range o.steps {
		if o.observer != nil {
			o.observer.StepStarted(i, step.Name)
		}

		res := step.Run(o.ctx)

		o.ctx.Log.WithFields(logrus.Fields{
			"step":    step.Name,
			"outcome": res.Outcome,
		}).Info(res.Detail)
		if res.Err != nil {
			o.ctx.Log.WithField("step", step.Name).Error(res.Err)
		}
		if o.observer != nil {
			o.observer.StepFinished(i, step.Name, res)
		}

		report.Steps = append(report.Steps, StepReport{Name: step.Name, Result: res})

		if step.Policy == PolicyFatal && res.Outcome == OutcomeFailed {
			report.Aborted = true
			return report, fmt.Errorf("%s: %w", step.Name, res.Err)
		}
	}
	return report, nil
}
