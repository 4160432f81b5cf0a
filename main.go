package main

import (
	"fmt"
	"os"

	"github.com/gcp-hcp/gcphcp/cmd"
	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// The final error line is always printed, even under --quiet,
		// with a stable kind tag so scripts can branch on it.
		fmt.Fprintln(os.Stderr, clierr.Format(err))
		os.Exit(clierr.ExitCode(err))
	}
}
