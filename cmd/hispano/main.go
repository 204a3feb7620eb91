package main

import (
	"os"

	"github.com/nicvazquezdev/hispano-lang/cmd/hispano/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
