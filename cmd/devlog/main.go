package main

import (
	"os"

	"github.com/ahmadsaptan/devlog/internal/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.LogError("command failed", err)
		os.Exit(1)
	}
}
