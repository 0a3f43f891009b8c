// Command chatstore operates the chat server's durable user store.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/chatstore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
