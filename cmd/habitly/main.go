// Command habitly is the local command line for tracking habits.
package main

import "github.com/comitanigiacomo/habitly/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
