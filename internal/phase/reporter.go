// SPDX-License-Identifier: MPL-2.0

package phase

type (
	// Reporter receives pipeline lifecycle callbacks. Implementations
	// must treat every callback as cosmetic: nothing they do may affect
	// ordering or outcome of the run.
	Reporter interface {
		// PhaseStart fires before the first step of a phase. index is
		// 1-based; percent is the share of phases already completed.
		PhaseStart(index, total int, label string, percent int)
		// StepStart fires before a step runs.
		StepStart(desc string)
		// StepDone fires after a step finishes. err is nil on success;
		// for best-effort steps a non-nil err was swallowed.
		StepDone(desc string, err error, bestEffort bool)
		// Done fires once at the end of the run with the terminal error,
		// if any.
		Done(err error)
	}

	// NopReporter discards all callbacks. Used by tests and by callers
	// that only care about the run's error.
	NopReporter struct{}
)

// PhaseStart implements Reporter.
func (NopReporter) PhaseStart(int, int, string, int) {}

// StepStart implements Reporter.
func (NopReporter) StepStart(string) {}

// StepDone implements Reporter.
func (NopReporter) StepDone(string, error, bool) {}

// Done implements Reporter.
func (NopReporter) Done(error) {}
