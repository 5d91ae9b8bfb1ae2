// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyprforge/internal/config"
)

// configCmd groups configuration inspection subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
}

// configShowCmd prints the effective configuration after merging.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print every configuration value after merging defaults with the
config file. Useful to check what an install run would actually use.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configPathCmd prints which config file is in effect.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, path, err := config.Load()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if path == "" {
		fmt.Println(SubtitleStyle.Render("# built-in defaults (no config file found)"))
	} else {
		fmt.Println(SubtitleStyle.Render("# " + path))
	}
	printSetting("target_user", cfg.TargetUser)
	printSetting("source_dir", cfg.SourceDir)
	printSetting("wallpaper", cfg.Wallpaper)
	printSetting("gpu", cfg.GPU)
	printSetting("aur_helper", cfg.AURHelper)
	printSetting("ui.verbose", fmt.Sprintf("%t", cfg.UI.Verbose))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	_, path, err := config.Load()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if path == "" {
		fmt.Println(SubtitleStyle.Render("no config file found; using built-in defaults"))
		return nil
	}
	fmt.Println(path)
	return nil
}

// printSetting prints one key: value line, rendering unset values dimly.
func printSetting(key, value string) {
	if value == "" {
		fmt.Println(CmdStyle.Render(key+":") + " " + SubtitleStyle.Render("(unset)"))
		return
	}
	fmt.Println(CmdStyle.Render(key+":") + " " + value)
}
