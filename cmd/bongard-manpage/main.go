package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/bongard/cmd/bongard"
	"github.com/arthur-debert/bongard/internal/version"
)

func main() {
	rootCmd := bongard.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "BONGARD",
		Section: "1",
		Source:  "bongard " + version.Version,
		Manual:  "bongard manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
