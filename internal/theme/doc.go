// SPDX-License-Identifier: MPL-2.0

// Package theme wires the wallpaper-driven theming mechanism.
//
// Three unrelated applications (the status bar, the notification
// daemon, the compositor) each read one fixed config path. Wire turns
// those fixed paths into symlinks pointing at pywal's cache output, so
// a single palette regeneration updates every consumer without any of
// them knowing about the others. Apply is the out-of-band trigger that
// performs the regeneration and restarts the consumers; Watch re-runs
// the restarts whenever something else rewrites the palette.
package theme
