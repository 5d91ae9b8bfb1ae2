// SPDX-License-Identifier: MPL-2.0

package phase

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// Runner executes phases strictly in order, steps strictly in order
// within each phase. Provisioning is inherently sequential (later
// phases assume earlier ones succeeded), so this is a plain linear
// loop with a single terminal failure state.
type Runner struct {
	reporter Reporter
	logger   *log.Logger
}

// NewRunner creates a phase runner. A nil reporter is replaced with
// NopReporter.
func NewRunner(reporter Reporter, logger *log.Logger) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{reporter: reporter, logger: logger}
}

// Run executes the pipeline. It returns nil on full success or the
// *StepError of the first required step that failed. Best-effort step
// failures are logged and reported but never propagate. Context
// cancellation between steps surfaces as a StepError wrapping ctx.Err.
func (r *Runner) Run(ctx context.Context, phases []Phase) error {
	total := len(phases)
	for i, ph := range phases {
		percent := 0
		if total > 0 {
			percent = i * 100 / total
		}
		r.reporter.PhaseStart(i+1, total, ph.Label, percent)
		r.logger.Info("phase started", "index", i+1, "total", total, "label", ph.Label)

		for _, step := range ph.Steps {
			if err := ctx.Err(); err != nil {
				stepErr := &StepError{Phase: ph.Label, Step: step.Desc, Err: err}
				r.reporter.Done(stepErr)
				return stepErr
			}

			r.reporter.StepStart(step.Desc)
			err := step.Run(ctx)

			if err != nil && step.BestEffort {
				r.logger.Warn("best-effort step failed", "step", step.Desc, "err", err)
				r.reporter.StepDone(step.Desc, err, true)
				continue
			}
			r.reporter.StepDone(step.Desc, err, false)

			if err != nil {
				stepErr := &StepError{
					Phase:  ph.Label,
					Step:   step.Desc,
					Output: carriedOutput(err),
					Err:    err,
				}
				r.logger.Error("step failed", "phase", ph.Label, "step", step.Desc, "err", err)
				r.reporter.Done(stepErr)
				return stepErr
			}
			r.logger.Debug("step completed", "step", step.Desc)
		}
	}

	r.reporter.Done(nil)
	return nil
}

// carriedOutput extracts captured command output from anywhere in the
// error chain.
func carriedOutput(err error) string {
	var carrier OutputCarrier
	if errors.As(err, &carrier) {
		return carrier.CommandOutput()
	}
	return ""
}
