package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/younwookim/lumen/internal/cli"
)

//go:embed configs/*.yaml
var configFS embed.FS

func main() {
	defaults, err := fs.Sub(configFS, "configs")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}

	cmd := cli.NewRootCommand(defaults)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
