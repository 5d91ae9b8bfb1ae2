// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"context"
	"strings"
	"testing"
)

func TestHostRunnerCapturesOutput(t *testing.T) {
	t.Parallel()

	r := NewHostRunner()
	result := r.Run(context.Background(), CmdSpec{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})

	if !result.Success() {
		t.Fatalf("Run() failed: exit=%d err=%v", result.ExitCode, result.Err)
	}
	if got, want := result.Output, "out\n"; got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}
	if got, want := result.ErrOutput, "err\n"; got != want {
		t.Errorf("ErrOutput = %q, want %q", got, want)
	}
}

func TestHostRunnerExitCode(t *testing.T) {
	t.Parallel()

	r := NewHostRunner()
	result := r.Run(context.Background(), CmdSpec{Name: "sh", Args: []string{"-c", "exit 4"}})

	if result.ExitCode != 4 {
		t.Errorf("ExitCode = %d, want 4", result.ExitCode)
	}
	if result.Err != nil {
		t.Errorf("Err = %v, want nil for a plain non-zero exit", result.Err)
	}
}

func TestHostRunnerCommandNotFound(t *testing.T) {
	t.Parallel()

	r := NewHostRunner()
	result := r.Run(context.Background(), CmdSpec{Name: "hyprforge-no-such-binary"})

	if result.Success() {
		t.Fatal("Run() succeeded for a missing binary")
	}
	if result.Err == nil {
		t.Error("Err = nil, want execution-level error for a missing binary")
	}
}

func TestHostRunnerStdin(t *testing.T) {
	t.Parallel()

	r := NewHostRunner()
	result := r.Run(context.Background(), CmdSpec{
		Name:  "sh",
		Args:  []string{"-c", "cat"},
		Stdin: strings.NewReader("secret\n"),
	})

	if !result.Success() {
		t.Fatalf("Run() failed: exit=%d err=%v", result.ExitCode, result.Err)
	}
	if got, want := result.Output, "secret\n"; got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}
}

func TestHostRunnerEnv(t *testing.T) {
	t.Parallel()

	r := NewHostRunner()
	result := r.Run(context.Background(), CmdSpec{
		Name: "sh",
		Args: []string{"-c", `printf '%s' "$HYPRFORGE_TEST_VAR"`},
		Env:  []string{"HYPRFORGE_TEST_VAR=wired"},
	})

	if got, want := result.Output, "wired"; got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}
}
