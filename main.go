package main

import (
	"os"

	"github.com/arcanaland/warcards/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
