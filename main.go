package main

import (
	"os"

	"github.com/skillsprint/skillsprint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
