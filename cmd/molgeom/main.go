// SPDX-License-Identifier: MIT

// Command molgeom is the command-line front end of the molgeom library.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/molgeom/internal/cli"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
