package main

import (
	"os"

	"github.com/qmodel/queuenet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
