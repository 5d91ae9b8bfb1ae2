// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"hyprforge/internal/config"
	"hyprforge/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "hyprforge",
		Short: "Provision a Hyprland desktop with wallpaper-driven theming",
		Long: TitleStyle.Render("hyprforge") + SubtitleStyle.Render(" - Hyprland desktop provisioning") + `

hyprforge brings a fresh Arch Linux machine to a fully configured
Hyprland desktop: it detects the GPU, installs the package set, deploys
your configuration tree and wires pywal-driven theming into the status
bar, notification daemon and compositor through symlinks.

Runs are idempotent: every step overwrites or skips, so a re-run after
a failure simply picks up where the machine is.

` + SubtitleStyle.Render("Examples:") + `
  sudo hyprforge install --user alice   Provision the machine for alice
  hyprforge detect                      Show the detected GPU profile
  hyprforge theme apply wall.jpg        Re-theme from a wallpaper
  hyprforge theme watch                 Follow external palette changes`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/hyprforge/config.cue)")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, _, err := config.Load()
	if err != nil {
		// Surface config loading errors but keep going on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// newLogger builds the run logger. Verbose drops the level to Debug.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hyprforge",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig returns the resolved configuration for subcommands.
func loadConfig() (*config.Config, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
