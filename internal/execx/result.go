// SPDX-License-Identifier: MPL-2.0

package execx

import "strings"

// Result holds the outcome of a single command or script execution.
type Result struct {
	// ExitCode is the process exit code (0 on success).
	ExitCode int
	// Output is the captured stdout.
	Output string
	// ErrOutput is the captured stderr.
	ErrOutput string
	// Err is set when execution itself failed (command not found,
	// context canceled), as opposed to the command exiting non-zero.
	Err error
}

// Success reports whether the execution completed with exit code 0
// and no execution-level error.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0 && r.Err == nil
}

// Combined returns stdout and stderr joined for operator-facing
// failure reports. Either side may be empty.
func (r *Result) Combined() string {
	out := strings.TrimSpace(r.Output)
	errOut := strings.TrimSpace(r.ErrOutput)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}
