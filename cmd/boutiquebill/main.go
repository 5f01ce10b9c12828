package main

import (
	"fmt"
	"os"

	"github.com/andy/boutiquebill/internal/cli"
)

func main() {
	// The app is created lazily by the command that needs it, so --help and
	// flag errors never prompt for the store key.
	err := cli.Execute()
	if cerr := cli.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
