package main

import (
	"os"

	"github.com/canvastools/canvas-as-code/internal/pkg/cli"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt/interactive"
	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
)

func main() {
	envs, err := env.FromOs()
	if err != nil {
		panic(err)
	}

	// Run command
	prompt := interactive.New(os.Stdin, os.Stdout, os.Stderr)
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, prompt, envs, aferofs.NewLocalFsFindProjectDir)
	os.Exit(cmd.Execute())
}
