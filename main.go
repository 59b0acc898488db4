package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/dealdesk/cmd"
	"github.com/thenoetrevino/dealdesk/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background())
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}
