// SPDX-License-Identifier: MPL-2.0

package main

import cmd "jssh-cli/cmd/jssh"

func main() {
	cmd.Execute()
}
