// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hyprforge/internal/deploy"
	"hyprforge/internal/execx"
	"hyprforge/internal/gpu"
	"hyprforge/internal/phase"
	"hyprforge/internal/pkgset"
	"hyprforge/internal/services"
	"hyprforge/internal/state"
	"hyprforge/internal/theme"
)

// buildPhases assembles the fixed provisioning pipeline. The order is
// load-bearing: packages before configs (directories must exist),
// configs before symlink wiring (templates must be deployed), ownership
// fix last (every earlier phase wrote as root).
func buildPhases(p installParams) []phase.Phase {
	deployer := deploy.NewDeployer(p.logger, p.tree.StaleLinkPaths())

	return []phase.Phase{
		{
			Label: "Preparation",
			Steps: []phase.Step{
				{
					Desc: "Refresh package databases and upgrade system",
					Run:  p.install.Upgrade,
				},
				{
					Desc: fmt.Sprintf("Using GPU profile: %s", p.profile),
					Run:  func(context.Context) error { return nil },
				},
			},
		},
		{
			Label: "Graphics drivers",
			Steps: []phase.Step{
				{
					Desc: "Install GPU driver packages",
					Run: func(ctx context.Context) error {
						return p.install.InstallRepo(ctx, p.plan.Drivers)
					},
				},
				{
					Desc:       "Install polkit fallback agent",
					BestEffort: true,
					Run: func(ctx context.Context) error {
						return p.install.InstallFallbacks(ctx, p.plan.Fallbacks)
					},
				},
			},
		},
		{
			Label: "Base packages",
			Steps: []phase.Step{
				{
					Desc: fmt.Sprintf("Install %s", groupSummary(p.plan.Groups)),
					Run: func(ctx context.Context) error {
						return p.install.InstallRepo(ctx, pkgset.Flatten(p.plan.Groups))
					},
				},
			},
		},
		{
			Label: "AUR packages",
			Steps: []phase.Step{
				{
					Desc: fmt.Sprintf("Ensure AUR helper (%s)", p.install.Helper()),
					Run: func(ctx context.Context) error {
						return p.install.EnsureHelper(ctx, p.username)
					},
				},
				{
					Desc: fmt.Sprintf("Install %s", groupSummary(p.plan.AURGroups)),
					Run: func(ctx context.Context) error {
						return p.install.InstallAUR(ctx, p.username, pkgset.Flatten(p.plan.AURGroups))
					},
				},
			},
		},
		{
			Label: "Configuration",
			Steps: []phase.Step{
				{
					Desc: "Deploy configuration tree",
					Run: func(context.Context) error {
						return deployer.Deploy(p.tree.Mappings())
					},
				},
				{
					Desc: "Write GPU environment fragment",
					Run: func(context.Context) error {
						return gpu.WriteEnv(p.profile, p.tree.HyprEnvPath())
					},
				},
			},
		},
		{
			Label: "Theming",
			Steps: []phase.Step{
				{
					Desc: "Wire theme symlinks",
					Run: func(context.Context) error {
						links := theme.Links(p.tree.ConfigDir(), p.tree.WalCacheDir())
						return theme.Wire(p.tree.TemplateDir(), links, p.logger)
					},
				},
				{
					Desc:       "Generate initial color scheme",
					BestEffort: true,
					Run: func(ctx context.Context) error {
						return initialPalette(ctx, p)
					},
				},
			},
		},
		{
			Label: "Services and ownership",
			Steps: []phase.Step{
				{
					Desc: "Enable NetworkManager",
					Run: func(ctx context.Context) error {
						return services.Enable(ctx, p.runner, "NetworkManager")
					},
				},
				{
					Desc:       "Enable bluetooth",
					BestEffort: true,
					Run: func(ctx context.Context) error {
						return services.Enable(ctx, p.runner, "bluetooth")
					},
				},
				{
					Desc: "Fix ownership of deployed trees",
					Run: func(context.Context) error {
						return fixOwnership(p)
					},
				},
				{
					Desc:       "Write install receipt",
					BestEffort: true,
					Run: func(context.Context) error {
						r := state.New(Version, p.profile.String(), p.username, p.plan.PackageCount())
						return state.Write(p.receiptPath, r)
					},
				},
			},
		},
	}
}

// initialPalette seeds pywal from the configured (or first deployed)
// wallpaper, as the target user so the cache lands under their home.
func initialPalette(ctx context.Context, p installParams) error {
	img := p.cfg.Wallpaper
	if img == "" {
		img = firstWallpaper(p.tree.WallpaperDir())
	}
	if img == "" {
		return fmt.Errorf("no wallpaper available for initial palette")
	}
	result := p.runner.Run(ctx, execx.CmdSpec{
		Name:   "wal",
		Args:   []string{"-i", img, "-n", "-q"},
		AsUser: p.username,
	})
	return execx.Check("wal", result)
}

// firstWallpaper picks the lexically first image in dir.
func firstWallpaper(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp":
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0])
}

// fixOwnership re-owns everything the run wrote under the target
// user's home.
func fixOwnership(p installParams) error {
	owner, err := deploy.LookupOwner(p.username)
	if err != nil {
		return err
	}
	for _, root := range []string{p.tree.ConfigDir(), p.tree.CacheDir(), p.tree.WallpaperDir()} {
		if err := deploy.ChownTree(root, owner); err != nil {
			return err
		}
	}
	return nil
}

// groupSummary renders "N packages (a, b, c)" for progress lines.
func groupSummary(groups []pkgset.Group) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return fmt.Sprintf("%d packages (%s)", len(pkgset.Flatten(groups)), strings.Join(names, ", "))
}
