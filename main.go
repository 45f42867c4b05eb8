// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/SunilSathipathi/mendix-v6-desktop-builder/cmd/mxbuilder"

func main() {
	cmd.Execute()
}
