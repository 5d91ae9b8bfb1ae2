// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ScriptSpec describes a shell script execution.
type ScriptSpec struct {
	// Script is the POSIX shell source to run.
	Script string
	// Dir is the working directory ("" for the process default).
	Dir string
	// Env holds extra KEY=VALUE pairs layered over the inherited environment.
	Env []string
}

// ScriptRunner executes shell scripts. Separated from Runner so tests
// can fake the two vehicles independently.
type ScriptRunner interface {
	RunScript(ctx context.Context, spec ScriptSpec) *Result
}

// ShellRunner runs scripts through the embedded mvdan/sh interpreter.
// External commands referenced by the script still execute on the host;
// the interpreter only replaces the outer shell binary, which keeps the
// bootstrap path working on systems where the root account has no
// usable login shell configured.
type ShellRunner struct{}

// NewShellRunner creates a shell script runner.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// RunScript parses and executes the script, capturing stdout and stderr.
// Script exit statuses surface through Result.ExitCode.
func (r *ShellRunner) RunScript(ctx context.Context, spec ScriptSpec) *Result {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(spec.Script), "script")
	if err != nil {
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to parse script: %w", err)}
	}

	var stdout, stderr bytes.Buffer

	opts := []interp.RunnerOption{
		interp.StdIO(nil, &stdout, &stderr),
		interp.Env(expand.ListEnviron(environWith(spec.Env)...)),
	}
	if spec.Dir != "" {
		opts = append(opts, interp.Dir(spec.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	err = runner.Run(ctx, prog)
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = int(exitStatus)
		} else {
			result.ExitCode = 1
			result.Err = fmt.Errorf("script execution failed: %w", err)
		}
	}

	return result
}
