// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the
// primary file format.
//
// Configuration is read from $XDG_CONFIG_HOME/flashbrain/config.cue (or the
// platform equivalent resolved by adrg/xdg), falling back to config.toml in the
// same directory. Both formats are validated against the embedded
// config_schema.cue. FLASHBRAIN_* environment variables override file values.
package config
