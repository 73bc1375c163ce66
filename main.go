package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/gtd/cmd"
	"github.com/thenoetrevino/gtd/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCodeFor(err))
}
