// SPDX-License-Identifier: MPL-2.0

// Package privilege validates the administrator's credentials once and
// caches the elevation for the rest of the run.
//
// Validation happens before any system mutation, so a wrong password
// can never leave the machine half-provisioned. On success a temporary
// sudoers drop-in grants the target account passwordless elevation for
// the remainder of the run; Release removes it on every exit path.
package privilege
