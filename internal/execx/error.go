// SPDX-License-Identifier: MPL-2.0

package execx

import "fmt"

// CommandError reports a command that failed to run or exited non-zero.
// It carries the captured output so the phase runner can surface it to
// the operator with the terminal failure.
type CommandError struct {
	// Name identifies the command for the error message.
	Name string
	// Result is the execution outcome.
	Result *Result
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Result.Err != nil {
		return fmt.Sprintf("%s: %v", e.Name, e.Result.Err)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Result.ExitCode)
}

// Unwrap exposes the execution-level error, if any.
func (e *CommandError) Unwrap() error {
	return e.Result.Err
}

// CommandOutput returns the captured stdout/stderr of the failed command.
func (e *CommandError) CommandOutput() string {
	return e.Result.Combined()
}

// Check converts a Result into an error: nil on success, a
// *CommandError otherwise.
func Check(name string, r *Result) error {
	if r.Success() {
		return nil
	}
	return &CommandError{Name: name, Result: r}
}
