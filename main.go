// SPDX-License-Identifier: MPL-2.0

package main

import cmd "hyprforge/cmd/hyprforge"

func main() {
	cmd.Execute()
}
