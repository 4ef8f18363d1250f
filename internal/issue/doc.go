// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The issue catalog holds longer Markdown guidance
// for the failure classes jssh reports (missing scripts, unresolvable or
// broken modules, configuration errors), rendered with glamour.
package issue
