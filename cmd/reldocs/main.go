package main

import (
	"os"

	"github.com/ndcmsl/workflows/internal/cli"
	"github.com/ndcmsl/workflows/internal/cli/shared"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(shared.ExitCode(err))
	}
}
