package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/sitelock/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.FormatError(err))
		os.Exit(1)
	}
}
