// SPDX-License-Identifier: MPL-2.0

package pkgset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"hyprforge/internal/gpu"
)

//go:embed packages.yaml
var manifestData []byte

type (
	// Group is a named, ordered set of package identifiers. The name is
	// a display label only.
	Group struct {
		Name     string   `yaml:"name"`
		Packages []string `yaml:"packages"`
	}

	// Manifest holds the canonical package sets.
	Manifest struct {
		// Groups are the repository package categories installed on
		// every machine.
		Groups []Group `yaml:"groups"`
		// AURGroups are only available from the AUR and need a helper.
		AURGroups []Group `yaml:"aur_groups"`
		// Drivers maps a GPU profile name to its driver package set.
		Drivers map[string][]string `yaml:"drivers"`
		// Fallbacks are installed best-effort after the main set.
		Fallbacks []string `yaml:"fallbacks"`
	}
)

// LoadManifest parses the embedded manifest. It fails only when the
// embedded data is malformed, which is a build defect, not a runtime
// condition.
func LoadManifest() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestData, &m); err != nil {
		return nil, fmt.Errorf("failed to parse embedded package manifest: %w", err)
	}
	if len(m.Groups) == 0 {
		return nil, fmt.Errorf("embedded package manifest has no groups")
	}
	for _, p := range []gpu.Profile{gpu.Nvidia, gpu.AMD, gpu.Intel, gpu.Generic} {
		if _, ok := m.Drivers[p.String()]; !ok {
			return nil, fmt.Errorf("embedded package manifest has no driver entry for profile %s", p)
		}
	}
	return &m, nil
}

// Flatten concatenates the packages of all given groups in order. The
// package manager deduplicates incidentally; this function does not.
func Flatten(groups []Group) []string {
	var pkgs []string
	for _, g := range groups {
		pkgs = append(pkgs, g.Packages...)
	}
	return pkgs
}
