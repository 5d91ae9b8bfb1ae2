// SPDX-License-Identifier: MPL-2.0

// Package pkgset composes the installation package list and drives the
// package manager.
//
// The canonical package sets live in an embedded YAML manifest, kept as
// tagged groups so display grouping and install-list composition stay
// independent concerns. Resolve picks the driver subset for the active
// GPU profile; the Installer shells out to pacman for repository
// packages and to an AUR helper (bootstrapped from source when absent)
// for community packages.
package pkgset
