// Command nvfuse runs dispatch passes over fusion IR fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/nvfuse/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nvfuse:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
