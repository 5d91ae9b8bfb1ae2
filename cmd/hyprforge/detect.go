// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyprforge/internal/execx"
	"hyprforge/internal/gpu"
)

var detectShowScan bool

// detectCmd reports the GPU profile this machine would be provisioned with.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the detected GPU profile",
	Long: `Scan the PCI bus and report which GPU profile an install run would
pick. A gpu override in config.cue takes precedence over the scan, the
same way it does during install.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectShowScan, "scan", false, "also print the raw display adapter lines")
}

func runDetect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if p, override, err := cfg.GPUOverride(); err == nil && override {
		fmt.Println(TitleStyle.Render("profile: ") + p.String() + " (pinned by config)")
		return nil
	}

	scan := gpu.Scan(cmd.Context(), execx.NewHostRunner())
	profile := gpu.Detect(scan)
	fmt.Println(TitleStyle.Render("profile: ") + profile.String())

	if detectShowScan {
		adapters := gpu.FilterDisplayAdapters(scan)
		if adapters == "" {
			fmt.Println(SubtitleStyle.Render("no display adapters found"))
		} else {
			fmt.Println(adapters)
		}
	}
	return nil
}
