package main

import (
	"os"

	"github.com/albertocavalcante/go-nuget2bazel/cmd/nuget2bazel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
