package main

import (
	"fmt"
	"os"

	cmd "code.continuecash.io/continuecash/cmd/continuecash/commands"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
