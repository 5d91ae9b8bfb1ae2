// SPDX-License-Identifier: MPL-2.0

// Package services enables system units at the end of a provisioning
// run.
package services

import (
	"context"

	"hyprforge/internal/execx"
)

// Enable enables and starts a systemd unit. Callers decide whether the
// unit is required (NetworkManager) or best-effort (bluetooth).
func Enable(ctx context.Context, runner execx.Runner, unit string) error {
	result := runner.Run(ctx, execx.CmdSpec{
		Name: "systemctl",
		Args: []string{"enable", "--now", unit},
	})
	return execx.Check("systemctl enable "+unit, result)
}
