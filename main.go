package main

import (
	"os"

	"github.com/PolarWolf314/triflow/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
