// SPDX-License-Identifier: MPL-2.0

package deploy

import (
	_ "embed"
	"os"
	"path/filepath"
)

//go:embed kitty_default.conf
var defaultKittyConf []byte

// DefaultKittyConf returns the built-in terminal configuration written
// when the user has none.
func DefaultKittyConf() []byte {
	return defaultKittyConf
}

// Tree holds the resolved path layout for one target user.
type Tree struct {
	// SourceDir is the configuration source tree root.
	SourceDir string
	// Home is the target user's home directory.
	Home string
}

// ConfigDir returns the user's XDG config directory.
func (t Tree) ConfigDir() string { return filepath.Join(t.Home, ".config") }

// CacheDir returns the user's XDG cache directory.
func (t Tree) CacheDir() string { return filepath.Join(t.Home, ".cache") }

// WalCacheDir returns the pywal output directory every theme symlink
// targets.
func (t Tree) WalCacheDir() string { return filepath.Join(t.CacheDir(), "wal") }

// TemplateDir returns the pywal template directory populated by the
// deploy step and consulted by the theme wiring.
func (t Tree) TemplateDir() string { return filepath.Join(t.ConfigDir(), "wal", "templates") }

// WallpaperDir returns where wallpaper images are deployed.
func (t Tree) WallpaperDir() string { return filepath.Join(t.Home, "Pictures", "wallpapers") }

// HyprEnvPath returns the compositor environment fragment location.
func (t Tree) HyprEnvPath() string { return filepath.Join(t.ConfigDir(), "hypr", "env.conf") }

// Mappings returns the standard deployment set for the tree. Exactly
// one mapping (the terminal config) uses CreateDefaultIfAbsent; all
// others refresh from the source tree's canonical copy on every run.
func (t Tree) Mappings() []Mapping {
	src := func(parts ...string) string {
		return filepath.Join(append([]string{t.SourceDir}, parts...)...)
	}
	return []Mapping{
		{Source: src("hypr"), Dest: filepath.Join(t.ConfigDir(), "hypr"), Policy: OverwriteIfSourceExists},
		{Source: src("waybar"), Dest: filepath.Join(t.ConfigDir(), "waybar"), Policy: OverwriteIfSourceExists},
		{Source: src("dunst"), Dest: filepath.Join(t.ConfigDir(), "dunst"), Policy: OverwriteIfSourceExists},
		{Source: src("wal", "templates"), Dest: t.TemplateDir(), Policy: OverwriteIfSourceExists},
		{Source: src("wallpapers"), Dest: t.WallpaperDir(), Policy: OverwriteIfSourceExists},
		{Dest: filepath.Join(t.ConfigDir(), "kitty", "kitty.conf"), Policy: CreateDefaultIfAbsent, Default: DefaultKittyConf()},
	}
}

// SourceExists reports whether the source tree carries at least one of
// the conventional subdirectories. A tree with none of them would make
// the deploy phase a silent no-op, which is worth refusing up front.
func (t Tree) SourceExists() bool {
	for _, m := range t.Mappings() {
		if m.Source == "" {
			continue
		}
		if info, err := os.Stat(m.Source); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// StaleLinkPaths returns the conventional consumer config paths that
// the theme wiring turns into symlinks. They are cleared before any
// copy so the deploy never writes through an old link.
func (t Tree) StaleLinkPaths() []string {
	return []string{
		filepath.Join(t.ConfigDir(), "waybar", "colors.css"),
		filepath.Join(t.ConfigDir(), "dunst", "dunstrc"),
		filepath.Join(t.ConfigDir(), "hypr", "colors.conf"),
	}
}
