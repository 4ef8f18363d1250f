// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by jssh tests: environment
// mutation with automatic restore, and filesystem fixtures on afero.
package testutil
