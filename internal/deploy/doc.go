// SPDX-License-Identifier: MPL-2.0

// Package deploy copies the configuration source tree into the target
// user's config directory and fixes ownership afterwards.
//
// Copying is best-effort per file: a partially populated destination is
// acceptable because the later theme wiring checks for presence, not
// completeness. Known stale symlinks are removed before copying so a
// copy never writes through a previously wired or dangling link.
package deploy
