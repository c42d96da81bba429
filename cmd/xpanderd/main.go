// Command xpanderd is the text-expansion daemon.
package main

import (
	"fmt"
	"os"

	"github.com/xpanderd/xpander/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
