// Command inventory maintains a product inventory seeded from a CSV feed.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/inventory/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
