// Command weave runs and inspects headless weave applications.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/weave/cmd/weave/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
