// SPDX-License-Identifier: MPL-2.0

// Package config handles jssh configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/jssh/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/jssh/config.cue on
// macOS, %APPDATA%\jssh\config.cue on Windows), falling back to config.cue in
// the current directory. Values are validated against an embedded CUE
// schema (config_schema.cue), and JSSH_* environment variables override
// file values (JSSH_MODULES_DEPENDENCY_DIR, JSSH_LOG_LEVEL, ...).
package config
