package main

import (
	"os"

	"github.com/zoltan-nz/whilelang/cmd/wlc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
