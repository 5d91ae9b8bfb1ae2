// SPDX-License-Identifier: MPL-2.0

// Package execx provides the command execution layer for hyprforge.
//
// Two execution vehicles are available:
//   - HostRunner: runs a single external command via os/exec with captured
//     stdout/stderr, optionally re-identified as the target (non-root) user.
//   - ScriptRunner: runs a multi-command POSIX script through the embedded
//     mvdan/sh interpreter, used where a step is a genuine shell pipeline
//     (the AUR helper bootstrap).
//
// All provisioning steps go through the Runner interface so tests can
// substitute a scripted fake and never touch the host system.
package execx
