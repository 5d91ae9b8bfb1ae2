// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hyprforge/internal/execx"
	"hyprforge/internal/testutil"
)

func testImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wall.jpg")
	if err := os.WriteFile(path, []byte("jpegdata"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestApplyMissingImage(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	a := NewApplier(runner, testutil.DiscardLogger())

	err := a.Apply(context.Background(), filepath.Join(t.TempDir(), "absent.jpg"))
	if err == nil {
		t.Fatal("Apply() = nil for a missing image, want error")
	}
	if len(runner.Calls()) != 0 {
		t.Error("missing image still triggered commands")
	}
}

func TestApplyPaletteGenerationFailureIsFatal(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{
		Responses: map[string]*execx.Result{
			"wal": testutil.Fail(1, "wal: error"),
		},
	}
	a := NewApplier(runner, testutil.DiscardLogger())

	if err := a.Apply(context.Background(), testImage(t)); err == nil {
		t.Fatal("Apply() = nil, want palette generation failure")
	}
	// Nothing downstream of the failed generation may run.
	if runner.Ran("swww") {
		t.Error("wallpaper swap ran after failed palette generation")
	}
}

func TestApplyHappyPath(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	a := NewApplier(runner, testutil.DiscardLogger())
	img := testImage(t)

	if err := a.Apply(context.Background(), img); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	calls := runner.Calls()
	if len(calls) == 0 || calls[0].Name != "wal" {
		t.Fatalf("first call = %v, want wal", calls)
	}
	// wal must not set the wallpaper itself.
	walArgs := calls[0].Args
	found := false
	for _, arg := range walArgs {
		if arg == "-n" {
			found = true
		}
	}
	if !found {
		t.Errorf("wal args = %v, want -n (swww owns the wallpaper)", walArgs)
	}

	for _, name := range []string{"swww", "pkill", "setsid", "hyprctl"} {
		if !runner.Ran(name) {
			t.Errorf("expected %s to run, calls: %v", name, runner.CallNames())
		}
	}
}

func TestApplyStartsDaemonDetachedWhenQueryFails(t *testing.T) {
	t.Parallel()

	// First swww call (query) fails; FakeRunner keys responses by name,
	// so script both query and img to succeed is impossible per-name.
	// Scripting swww to fail makes Apply fail at the img step, but the
	// daemon start must have been attempted in between.
	runner := &testutil.FakeRunner{
		Responses: map[string]*execx.Result{
			"swww": testutil.Fail(1, "no daemon"),
		},
	}
	a := NewApplier(runner, testutil.DiscardLogger())

	if err := a.Apply(context.Background(), testImage(t)); err == nil {
		t.Fatal("Apply() = nil, want wallpaper swap failure")
	}

	started := false
	for _, c := range runner.Calls() {
		if c.Name == "swww-daemon" {
			t.Fatal("daemon launched in the foreground instead of detached")
		}
		if c.Name == "setsid" && len(c.Args) == 2 && c.Args[0] == "--fork" && c.Args[1] == "swww-daemon" {
			started = true
		}
	}
	if !started {
		t.Errorf("daemon start not attempted, calls: %v", runner.CallNames())
	}
}

// foregroundDaemonRunner behaves like a wallpaper daemon launched
// without detaching: the process never exits, so a blocking Run would
// hold its caller forever.
type foregroundDaemonRunner struct {
	testutil.FakeRunner
}

func (r *foregroundDaemonRunner) Run(ctx context.Context, spec execx.CmdSpec) *execx.Result {
	if spec.Name == "swww-daemon" {
		<-ctx.Done()
		return &execx.Result{ExitCode: -1, Err: ctx.Err()}
	}
	return r.FakeRunner.Run(ctx, spec)
}

func TestApplyDaemonStartDoesNotBlock(t *testing.T) {
	t.Parallel()

	runner := &foregroundDaemonRunner{
		FakeRunner: testutil.FakeRunner{
			Responses: map[string]*execx.Result{
				"swww": testutil.Fail(1, "no daemon"),
			},
		},
	}
	a := NewApplier(runner, testutil.DiscardLogger())
	img := testImage(t)

	done := make(chan error, 1)
	go func() {
		done <- a.Apply(context.Background(), img)
	}()

	select {
	case err := <-done:
		// The failing swww img call still surfaces; the point is that
		// Apply returned at all with a daemon that never exits.
		if err == nil {
			t.Error("Apply() = nil, want wallpaper swap failure")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Apply blocked on the wallpaper daemon")
	}
}

func TestApplyWallpaperSwapFailureIsFatal(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{
		Responses: map[string]*execx.Result{
			"swww": testutil.Fail(1, "img failed"),
		},
	}
	a := NewApplier(runner, testutil.DiscardLogger())

	if err := a.Apply(context.Background(), testImage(t)); err == nil {
		t.Fatal("Apply() = nil, want wallpaper swap failure")
	}
	if runner.Ran("pkill") {
		t.Error("consumer restarts ran after a fatal wallpaper failure")
	}
}

func TestApplyConsumerRestartIsBestEffort(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{
		Responses: map[string]*execx.Result{
			"pkill":   testutil.Fail(1, ""), // nothing was running
			"setsid":  testutil.Fail(127, "setsid: not found"),
			"hyprctl": testutil.Fail(1, "socket missing"),
		},
	}
	a := NewApplier(runner, testutil.DiscardLogger())

	if err := a.Apply(context.Background(), testImage(t)); err != nil {
		t.Fatalf("Apply() = %v, restart and reload failures must not propagate", err)
	}
}

func TestRestartConsumersCoversBoth(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	a := NewApplier(runner, testutil.DiscardLogger())

	a.RestartConsumers(context.Background())

	started := map[string]bool{}
	for _, c := range runner.Calls() {
		if c.Name == "setsid" && len(c.Args) == 2 {
			started[c.Args[1]] = true
		}
	}
	for _, want := range []string{"dunst", "waybar"} {
		if !started[want] {
			t.Errorf("consumer %s not restarted, calls: %v", want, runner.Calls())
		}
	}
}
