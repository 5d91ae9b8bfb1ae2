// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE
// as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/hyprforge/config.cue
// (defaulting to ~/.config/hyprforge/config.cue), with ./config.cue as
// a fallback for running straight out of a dotfiles checkout. Values
// are validated against an embedded CUE schema before use, so invalid
// configurations fail with a parse-time message rather than a
// mid-provisioning surprise.
package config
