// Package main provides the drosera CLI, a command line front end for
// training, storing, and sampling Markov chain text models.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
