// SPDX-License-Identifier: MPL-2.0

package phase

import (
	"context"
	"fmt"
	"strings"
)

type (
	// Step is an atomic unit of provisioning work.
	Step struct {
		// Desc is the operator-facing description, also used in failures.
		Desc string
		// Run performs the work. A returned *execx-derived error may
		// implement OutputCarrier to attach captured command output.
		Run func(ctx context.Context) error
		// BestEffort marks steps whose failure is reported but never
		// aborts the run (optional services, redundant fallbacks).
		BestEffort bool
	}

	// Phase is a named, ordered group of steps. Phases are 1-indexed by
	// position; the index exists only for progress display.
	Phase struct {
		Label string
		Steps []Step
	}

	// StepError is the terminal failure of a run: the first required
	// step that failed, with enough context to point the operator at
	// the captured output.
	StepError struct {
		Phase  string
		Step   string
		Output string
		Err    error
	}

	// OutputCarrier lets step errors surface captured stdout/stderr of
	// the failing command. Errors from internal/execx-backed steps
	// implement it.
	OutputCarrier interface {
		CommandOutput() string
	}
)

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("phase %q: step %q failed: %v", e.Phase, e.Step, e.Err)
}

// Unwrap returns the underlying step error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Detail returns the failure message with captured output appended,
// suitable for the final stderr report.
func (e *StepError) Detail() string {
	if strings.TrimSpace(e.Output) == "" {
		return e.Error()
	}
	return e.Error() + "\n\ncommand output:\n" + strings.TrimSpace(e.Output)
}
