// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Link aliases a consumer application's fixed config path into the
// pywal cache.
type Link struct {
	// Template is the filename under the template directory that must
	// exist for the link to be wired.
	Template string
	// Stable is the fixed path the consumer application reads.
	Stable string
	// Target is the cache path the external regeneration rewrites.
	Target string
}

// Links returns the fixed consumer set for a config/cache directory
// pair. The filenames are the conventional names each application
// expects and must not drift.
func Links(configDir, walCacheDir string) []Link {
	return []Link{
		{
			Template: "colors-waybar.css",
			Stable:   filepath.Join(configDir, "waybar", "colors.css"),
			Target:   filepath.Join(walCacheDir, "colors-waybar.css"),
		},
		{
			Template: "dunstrc",
			Stable:   filepath.Join(configDir, "dunst", "dunstrc"),
			Target:   filepath.Join(walCacheDir, "dunstrc"),
		},
		{
			Template: "colors-hyprland.conf",
			Stable:   filepath.Join(configDir, "hypr", "colors.conf"),
			Target:   filepath.Join(walCacheDir, "colors-hyprland.conf"),
		},
	}
}

// Wire establishes the symlink indirection for every link whose
// template file exists. Absent templates are skipped silently: template
// population happens lazily on the first palette generation, and the
// next install rerun picks them up. The cache target itself may dangle
// until then; consumers tolerate that the same way they tolerate a
// missing config.
func Wire(templateDir string, links []Link, logger *log.Logger) error {
	for _, l := range links {
		templatePath := filepath.Join(templateDir, l.Template)
		if _, err := os.Stat(templatePath); err != nil {
			if os.IsNotExist(err) {
				logger.Debug("template absent, link skipped", "template", templatePath)
				continue
			}
			return fmt.Errorf("failed to inspect template %s: %w", templatePath, err)
		}
		if err := relink(l.Stable, l.Target); err != nil {
			return err
		}
		logger.Debug("theme link wired", "stable", l.Stable, "target", l.Target)
	}
	return nil
}

// relink atomically (re)points stable at target: the new link is
// created under a unique temporary name and renamed over the stable
// path, so a consumer reading mid-wire sees either the old alias or the
// new one, never a missing file.
func relink(stable, target string) error {
	if err := os.MkdirAll(filepath.Dir(stable), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", stable, err)
	}
	tmp := fmt.Sprintf("%s.%s.tmp", stable, uuid.NewString())
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("failed to create symlink for %s: %w", stable, err)
	}
	if err := os.Rename(tmp, stable); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", stable, err)
	}
	return nil
}
