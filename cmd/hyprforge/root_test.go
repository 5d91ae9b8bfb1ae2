// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"hyprforge/internal/issue"
)

func TestGetVersionStringDev(t *testing.T) {
	if got := getVersionString(); !strings.Contains(got, "dev") {
		t.Errorf("getVersionString() = %q, want dev marker for source builds", got)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Check the CUE syntax").
		Wrap(errors.New("bad token")).
		BuildError()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "Check the CUE syntax") {
		t.Errorf("formatErrorForDisplay(actionable) = %q, missing suggestion", got)
	}

	verbose := formatErrorForDisplay(actionable, true)
	if !strings.Contains(verbose, "Error chain") {
		t.Errorf("verbose format = %q, missing chain", verbose)
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{Code: 2, Err: cause}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ExitError does not unwrap its cause")
	}

	bare := &ExitError{Code: 3}
	if got := bare.Error(); !strings.Contains(got, "3") {
		t.Errorf("bare Error() = %q, want the exit code", got)
	}
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	want := map[string]bool{"install": false, "detect": false, "theme": false, "config": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}
