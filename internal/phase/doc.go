// SPDX-License-Identifier: MPL-2.0

// Package phase implements the sequential provisioning pipeline.
//
// A run is an ordered list of phases; each phase is an ordered list of
// steps. Required steps abort the run on first failure with the step's
// captured output attached. Best-effort steps report their failure and
// the run continues. There are no retries and no rollback: re-running
// the tool is the recovery path, and every step is written to be
// overwrite-or-skip rather than additive.
//
// Progress reporting goes through the Reporter interface so the core
// pipeline is testable without a terminal attached.
package phase
