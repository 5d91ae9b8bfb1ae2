// SPDX-License-Identifier: MPL-2.0

package phase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hyprforge/internal/testutil"
)

// recordingReporter captures the callback stream for assertions.
type recordingReporter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingReporter) record(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingReporter) PhaseStart(_, _ int, label string, _ int) { r.record("phase:" + label) }
func (r *recordingReporter) StepStart(desc string)                    { r.record("start:" + desc) }
func (r *recordingReporter) StepDone(desc string, err error, bestEffort bool) {
	switch {
	case err == nil:
		r.record("ok:" + desc)
	case bestEffort:
		r.record("warn:" + desc)
	default:
		r.record("fail:" + desc)
	}
}
func (r *recordingReporter) Done(error) { r.record("done") }

// outputError simulates a failed command error that carries output.
type outputError struct{ output string }

func (e *outputError) Error() string         { return "command failed" }
func (e *outputError) CommandOutput() string { return e.output }

func step(desc string, err error, ran *[]string) Step {
	return Step{
		Desc: desc,
		Run: func(context.Context) error {
			*ran = append(*ran, desc)
			return err
		},
	}
}

func TestRunnerSequentialSuccess(t *testing.T) {
	t.Parallel()

	var ran []string
	phases := []Phase{
		{Label: "first", Steps: []Step{step("a", nil, &ran), step("b", nil, &ran)}},
		{Label: "second", Steps: []Step{step("c", nil, &ran)}},
	}

	rep := &recordingReporter{}
	if err := NewRunner(rep, testutil.DiscardLogger()).Run(context.Background(), phases); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("step order %v, want %v", ran, want)
			break
		}
	}

	wantEvents := []string{"phase:first", "start:a", "ok:a", "start:b", "ok:b", "phase:second", "start:c", "ok:c", "done"}
	if len(rep.events) != len(wantEvents) {
		t.Fatalf("events %v, want %v", rep.events, wantEvents)
	}
	for i := range wantEvents {
		if rep.events[i] != wantEvents[i] {
			t.Errorf("events %v, want %v", rep.events, wantEvents)
			break
		}
	}
}

func TestRunnerFailFast(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var ran []string
	phases := []Phase{
		{Label: "first", Steps: []Step{step("a", nil, &ran), step("b", boom, &ran), step("c", nil, &ran)}},
		{Label: "second", Steps: []Step{step("d", nil, &ran)}},
	}

	err := NewRunner(nil, testutil.DiscardLogger()).Run(context.Background(), phases)
	if err == nil {
		t.Fatal("Run() = nil, want failure")
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error type = %T, want *StepError", err)
	}
	if stepErr.Phase != "first" || stepErr.Step != "b" {
		t.Errorf("StepError = %q/%q, want first/b", stepErr.Phase, stepErr.Step)
	}
	if !errors.Is(err, boom) {
		t.Error("StepError does not wrap the step's error")
	}

	// Nothing after the failed step may run.
	if len(ran) != 2 || ran[1] != "b" {
		t.Errorf("ran %v, want exactly [a b]", ran)
	}
}

func TestRunnerBestEffortContinues(t *testing.T) {
	t.Parallel()

	var ran []string
	phases := []Phase{{
		Label: "only",
		Steps: []Step{
			{Desc: "optional", BestEffort: true, Run: func(context.Context) error {
				ran = append(ran, "optional")
				return errors.New("unit not found")
			}},
			step("required", nil, &ran),
		},
	}}

	rep := &recordingReporter{}
	if err := NewRunner(rep, testutil.DiscardLogger()).Run(context.Background(), phases); err != nil {
		t.Fatalf("Run() error: %v, best-effort failures must not propagate", err)
	}
	if len(ran) != 2 {
		t.Errorf("ran %v, want both steps", ran)
	}

	found := false
	for _, e := range rep.events {
		if e == "warn:optional" {
			found = true
		}
	}
	if !found {
		t.Errorf("reporter events %v missing warn:optional", rep.events)
	}
}

func TestRunnerContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var ran []string
	phases := []Phase{{
		Label: "only",
		Steps: []Step{
			{Desc: "canceller", Run: func(context.Context) error {
				ran = append(ran, "canceller")
				cancel()
				return nil
			}},
			step("after", nil, &ran),
		},
	}}

	err := NewRunner(nil, testutil.DiscardLogger()).Run(ctx, phases)
	if err == nil {
		t.Fatal("Run() = nil, want cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
	if len(ran) != 1 {
		t.Errorf("ran %v, want only the cancelling step", ran)
	}
}

func TestStepErrorCarriesOutput(t *testing.T) {
	t.Parallel()

	phases := []Phase{{
		Label: "only",
		Steps: []Step{{Desc: "failing", Run: func(context.Context) error {
			return &outputError{output: "error: target not found: no-such-pkg"}
		}}},
	}}

	err := NewRunner(nil, testutil.DiscardLogger()).Run(context.Background(), phases)

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error type = %T, want *StepError", err)
	}
	if stepErr.Output != "error: target not found: no-such-pkg" {
		t.Errorf("Output = %q, want the carried command output", stepErr.Output)
	}

	detail := stepErr.Detail()
	if detail == stepErr.Error() {
		t.Error("Detail() dropped the command output")
	}
}

func TestStepErrorDetailWithoutOutput(t *testing.T) {
	t.Parallel()

	stepErr := &StepError{Phase: "p", Step: "s", Err: errors.New("boom")}
	if stepErr.Detail() != stepErr.Error() {
		t.Error("Detail() without output must equal Error()")
	}
}

func TestRunnerEmptyPipeline(t *testing.T) {
	t.Parallel()

	if err := NewRunner(nil, testutil.DiscardLogger()).Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() on empty pipeline = %v, want nil", err)
	}
}
