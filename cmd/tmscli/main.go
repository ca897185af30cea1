package main

import (
	"fmt"
	"os"

	"github.com/mihret/tmscli/cmd/tmscli/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
