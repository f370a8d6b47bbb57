package main

import (
	"os"

	"github.com/Tinghao724/ox/cmd/ox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
