// SPDX-License-Identifier: MPL-2.0

package pkgset

import "hyprforge/internal/gpu"

// Plan is the resolved installation for one run.
type Plan struct {
	// Drivers is the GPU driver subset for the active profile. Empty
	// for Generic: distribution defaults are relied upon.
	Drivers []string
	// Groups are the repository package categories.
	Groups []Group
	// AURGroups are the community packages needing the helper.
	AURGroups []Group
	// Fallbacks are best-effort supplements.
	Fallbacks []string
}

// Resolve composes the Plan for a profile from the manifest. It is a
// pure lookup; the profile was detected exactly once upstream.
func Resolve(m *Manifest, profile gpu.Profile) Plan {
	return Plan{
		Drivers:   m.Drivers[profile.String()],
		Groups:    m.Groups,
		AURGroups: m.AURGroups,
		Fallbacks: m.Fallbacks,
	}
}

// PackageCount returns the number of packages the plan will hand to the
// package manager, for the receipt and progress display.
func (p Plan) PackageCount() int {
	return len(p.Drivers) + len(Flatten(p.Groups)) + len(Flatten(p.AURGroups))
}
