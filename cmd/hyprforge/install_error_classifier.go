// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"hyprforge/internal/issue"
	"hyprforge/internal/pkgset"
)

// classifyInstallError maps a pipeline failure to an issue catalog id
// so the CLI can render the matching help card. Returns zero when no
// card applies and the plain error display is all there is.
func classifyInstallError(err error) issue.Id {
	switch {
	case errors.Is(err, pkgset.ErrBootstrapFailed):
		return issue.AurBootstrapFailedId
	case errors.Is(err, pkgset.ErrInstallFailed):
		return issue.PackageInstallFailedId
	}
	return 0
}
