// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the jssh command-line interface.
//
// The root command runs a script file directly (jssh script.js args...).
// Subcommands evaluate inline code, resolve module specifiers, list the
// script API and manage configuration.
package cmd
