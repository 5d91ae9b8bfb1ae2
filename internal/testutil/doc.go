// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test helpers: scripted command and
// script runners that record what provisioning code would have
// executed, and a silent logger.
package testutil
