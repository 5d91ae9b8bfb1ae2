// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"errors"
	"testing"
)

func TestResultSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    *Result
		want bool
	}{
		{name: "zero exit", r: &Result{}, want: true},
		{name: "non-zero exit", r: &Result{ExitCode: 1}, want: false},
		{name: "execution error", r: &Result{Err: errors.New("boom")}, want: false},
		{name: "nil result", r: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.r.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultCombined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    *Result
		want string
	}{
		{name: "both empty", r: &Result{}, want: ""},
		{name: "stdout only", r: &Result{Output: "out\n"}, want: "out"},
		{name: "stderr only", r: &Result{ErrOutput: "err\n"}, want: "err"},
		{name: "both", r: &Result{Output: "out\n", ErrOutput: "err\n"}, want: "out\nerr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.r.Combined(); got != tt.want {
				t.Errorf("Combined() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	if err := Check("true", &Result{}); err != nil {
		t.Fatalf("Check() on success = %v, want nil", err)
	}

	err := Check("pacman -Syu", &Result{ExitCode: 1, ErrOutput: "error: failed to synchronize\n"})
	if err == nil {
		t.Fatal("Check() on failure = nil, want error")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Check() error type = %T, want *CommandError", err)
	}
	if got, want := cmdErr.Error(), "pacman -Syu exited with status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := cmdErr.CommandOutput(), "error: failed to synchronize"; got != want {
		t.Errorf("CommandOutput() = %q, want %q", got, want)
	}
}

func TestCommandErrorExecutionFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("executable file not found")
	err := Check("lspci", &Result{ExitCode: 1, Err: cause})

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Check() error type = %T, want *CommandError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("error chain does not reach the execution error")
	}
}
