// knownsites - PhosphoSitePlus known-site annotation tool
package main

import (
	"fmt"
	"os"

	"github.com/wengx006/perseus-plugins/cmd/knownsites/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
