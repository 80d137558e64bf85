package main

import (
	"os"

	"github.com/msto63/pcomb/cmd/pcomb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
