// SPDX-License-Identifier: MPL-2.0

// Package gpu classifies the machine's display adapter into a profile
// and emits the profile-specific Hyprland environment fragment.
//
// The profile is detected once per run from lspci output and threaded
// into the two consumers that depend on it: driver package selection
// (internal/pkgset) and the environment fragment written here. Both are
// pure lookups keyed on Profile so the vendor matching lives in exactly
// one place.
package gpu
