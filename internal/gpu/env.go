// SPDX-License-Identifier: MPL-2.0

package gpu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvVar is a single `env = KEY,VALUE` declaration in the Hyprland
// environment fragment.
type EnvVar struct {
	Key   string
	Value string
}

// envHeader is the first line of every generated fragment. The file is
// regenerated from scratch on each run, so editing it by hand is futile.
const envHeader = "# Generated by hyprforge. Changes here are overwritten on the next install run."

// defaultEnv is the fragment shared by all profiles.
var defaultEnv = []EnvVar{
	{"XDG_SESSION_TYPE", "wayland"},
	{"XCURSOR_SIZE", "24"},
}

// profileEnv holds the per-profile additions layered after defaultEnv.
// Generic adds nothing: the default two-line fragment is exactly what
// a machine with an unknown adapter gets.
var profileEnv = map[Profile][]EnvVar{
	Nvidia: {
		{"LIBVA_DRIVER_NAME", "nvidia"},
		{"GBM_BACKEND", "nvidia-drm"},
		{"__GLX_VENDOR_LIBRARY_NAME", "nvidia"},
		{"NVD_BACKEND", "direct"},
	},
	AMD: {
		{"LIBVA_DRIVER_NAME", "radeonsi"},
	},
	Intel: {
		{"LIBVA_DRIVER_NAME", "iHD"},
	},
}

// nvidiaCursorBlock works around invisible hardware cursors on the
// NVIDIA stack. Only that profile gets it.
const nvidiaCursorBlock = `cursor {
    no_hardware_cursors = true
}`

// EnvVars returns the ordered declarations for a profile.
func EnvVars(profile Profile) []EnvVar {
	vars := make([]EnvVar, 0, len(defaultEnv)+len(profileEnv[profile]))
	vars = append(vars, defaultEnv...)
	vars = append(vars, profileEnv[profile]...)
	return vars
}

// RenderEnv produces the full fragment text for a profile. The
// `env = KEY,VALUE` line format is what Hyprland's config loader
// expects and must be preserved exactly.
func RenderEnv(profile Profile) string {
	var b strings.Builder
	b.WriteString(envHeader)
	b.WriteString("\n")
	for _, v := range EnvVars(profile) {
		fmt.Fprintf(&b, "env = %s,%s\n", v.Key, v.Value)
	}
	if profile == Nvidia {
		b.WriteString("\n")
		b.WriteString(nvidiaCursorBlock)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteEnv regenerates the environment fragment at path. Truncate-then-
// write keeps the step idempotent across reruns.
func WriteEnv(profile Profile, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(RenderEnv(profile)), 0o644); err != nil {
		return fmt.Errorf("failed to write environment fragment: %w", err)
	}
	return nil
}
