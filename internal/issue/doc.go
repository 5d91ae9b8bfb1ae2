// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing error handling.
//
// ActionableError carries what operation failed, which resource was
// involved and suggestions for fixing it. The package also keeps a
// registry of well-known failure classes (not running as root, failed
// privilege validation, AUR bootstrap failures, ...) whose markdown
// help cards are rendered with glamour.
package issue
