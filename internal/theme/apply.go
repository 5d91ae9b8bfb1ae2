// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"hyprforge/internal/execx"
)

// Consumer applications restarted after a palette regeneration. Both
// restarts are independent best-effort tasks with kill-if-running
// semantics; their relative order is unspecified and each tolerates the
// other's absence.
var consumers = []string{"dunst", "waybar"}

// Applier is the out-of-band theme trigger: it regenerates the palette
// from an image, swaps the wallpaper, restarts the consumers that read
// through the theme symlinks and reloads the compositor.
type Applier struct {
	runner execx.Runner
	logger *log.Logger
}

// NewApplier creates an Applier.
func NewApplier(runner execx.Runner, logger *log.Logger) *Applier {
	return &Applier{runner: runner, logger: logger}
}

// Apply runs the full trigger sequence for the given wallpaper image.
// Palette generation and wallpaper swap are required; everything after
// is best-effort because a half-restarted desktop still picks the new
// colors up on its own next restart.
func (a *Applier) Apply(ctx context.Context, image string) error {
	if _, err := os.Stat(image); err != nil {
		return fmt.Errorf("wallpaper image not readable: %w", err)
	}

	// -n suppresses wal's own wallpaper setter; swww handles that.
	result := a.runner.Run(ctx, execx.CmdSpec{
		Name: "wal",
		Args: []string{"-i", image, "-n", "-q"},
	})
	if err := execx.Check("wal", result); err != nil {
		return fmt.Errorf("palette generation: %w", err)
	}

	if err := a.setWallpaper(ctx, image); err != nil {
		return err
	}

	a.RestartConsumers(ctx)

	if r := a.runner.Run(ctx, execx.CmdSpec{Name: "hyprctl", Args: []string{"reload"}}); !r.Success() {
		a.logger.Warn("compositor reload failed", "err", execx.Check("hyprctl reload", r))
	}
	return nil
}

// setWallpaper hands the image to swww, starting its daemon first when
// it is not answering. The daemon runs in the foreground and never
// exits, so it has to be launched detached like the consumers.
func (a *Applier) setWallpaper(ctx context.Context, image string) error {
	if r := a.runner.Run(ctx, execx.CmdSpec{Name: "swww", Args: []string{"query"}}); !r.Success() {
		a.logger.Debug("starting swww daemon")
		if r := a.runner.Run(ctx, execx.CmdSpec{
			Name: "setsid",
			Args: []string{"--fork", "swww-daemon"},
		}); !r.Success() {
			a.logger.Warn("could not start swww daemon")
		}
	}
	result := a.runner.Run(ctx, execx.CmdSpec{
		Name: "swww",
		Args: []string{"img", image, "--transition-type", "grow", "--transition-fps", "60"},
	})
	if err := execx.Check("swww img", result); err != nil {
		return fmt.Errorf("wallpaper swap: %w", err)
	}
	return nil
}

// RestartConsumers restarts the symlink-reading applications
// concurrently. Each restart is fire-and-forget: kill if present, then
// start detached. Failures are logged, never returned.
func (a *Applier) RestartConsumers(ctx context.Context) {
	var wg sync.WaitGroup
	for _, name := range consumers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			a.restart(ctx, name)
		}(name)
	}
	wg.Wait()
}

// restart kills a consumer if running and starts it again. pkill
// exiting non-zero just means nothing was running.
func (a *Applier) restart(ctx context.Context, name string) {
	a.runner.Run(ctx, execx.CmdSpec{Name: "pkill", Args: []string{"-x", name}})
	if r := a.runner.Run(ctx, execx.CmdSpec{
		Name: "setsid",
		Args: []string{"--fork", name},
	}); !r.Success() {
		a.logger.Warn("failed to restart consumer", "name", name)
		return
	}
	a.logger.Debug("consumer restarted", "name", name)
}
