// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hyprforge/internal/deploy"
	"hyprforge/internal/execx"
	"hyprforge/internal/theme"
)

// themeCmd groups the out-of-band theming triggers. These run as the
// desktop user inside a live session, not as root.
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Re-theme the running desktop",
	Long: `Apply a wallpaper-driven theme to the running session, or watch the
palette cache and restart the consumers whenever an external tool
regenerates it.`,
}

// themeApplyCmd regenerates the palette from a wallpaper and propagates it.
var themeApplyCmd = &cobra.Command{
	Use:   "apply [image]",
	Short: "Generate a palette from a wallpaper and apply it",
	Long: `Run the full theme trigger: generate the palette from the image, set
the wallpaper, restart the notification daemon and status bar and reload
the compositor. With no argument the wallpaper from config.cue is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThemeApply,
}

// themeWatchCmd follows palette regenerations done outside hyprforge.
var themeWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Restart theme consumers when the palette cache changes",
	Long: `Watch the palette cache directory and restart the notification daemon
and status bar whenever the palette file is rewritten. Useful when
another tool (a wallpaper picker, a cron job) drives wal directly.

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runThemeWatch,
}

func init() {
	themeCmd.AddCommand(themeApplyCmd)
	themeCmd.AddCommand(themeWatchCmd)
}

func runThemeApply(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	image := ""
	if len(args) == 1 {
		image = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}
		image = cfg.Wallpaper
	}
	if image == "" {
		return &ExitError{Code: 1, Err: fmt.Errorf("no wallpaper: pass an image path or set wallpaper in config.cue")}
	}

	applier := theme.NewApplier(execx.NewHostRunner(), logger)
	if err := applier.Apply(cmd.Context(), image); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	fmt.Println(SuccessStyle.Render("✓ ") + "theme applied")
	return nil
}

func runThemeWatch(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	home, err := os.UserHomeDir()
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("resolving home directory: %w", err)}
	}
	tree := deploy.Tree{Home: home}

	applier := theme.NewApplier(execx.NewHostRunner(), logger)
	watcher := theme.NewWatcher(applier, logger)
	if err := watcher.Watch(cmd.Context(), tree.WalCacheDir()); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}
