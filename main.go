package main

import (
	"os"

	"github.com/slaacns/slaacns/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
