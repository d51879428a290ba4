package main

import (
	"os"

	"github.com/arthur-debert/bongard/cmd/bongard"
)

func main() {
	rootCmd := bongard.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		bongard.ReportError(rootCmd, err)
		os.Exit(1)
	}
}
