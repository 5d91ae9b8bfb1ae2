// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CmdSpec describes a single external command invocation.
type CmdSpec struct {
	// Name is the command to run, resolved against PATH.
	Name string
	// Args are the command arguments.
	Args []string
	// Dir is the working directory ("" for the process default).
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
	// Stdin is fed to the command's standard input (nil for none).
	Stdin io.Reader
	// AsUser re-identifies the command as the named account via
	// "sudo -u". Empty means run as the current (root) user.
	AsUser string
}

// Runner executes external commands. Provisioning steps depend on this
// interface rather than os/exec so tests can inject scripted fakes.
type Runner interface {
	Run(ctx context.Context, spec CmdSpec) *Result
}

// HostRunner executes commands directly on the host with captured output.
type HostRunner struct{}

// NewHostRunner creates a host command runner.
func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

// Run executes the command described by spec and captures its output.
// A non-zero exit is reported through Result.ExitCode, not Result.Err.
func (r *HostRunner) Run(ctx context.Context, spec CmdSpec) *Result {
	name := spec.Name
	args := spec.Args
	if spec.AsUser != "" {
		args = append([]string{"-u", spec.AsUser, name}, args...)
		name = "sudo"
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Err = fmt.Errorf("failed to execute %s: %w", spec.Name, err)
		}
	}

	return result
}

// LookPath reports whether the named binary is resolvable on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
