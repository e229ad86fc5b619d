package main

import (
	"errors"
	"fmt"
	"os"

	"tracksync.dev/tracksync/internal/cli"
	tserrors "tracksync.dev/tracksync/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, tserrors.ErrPullFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
