package main

import (
	"context"
	"fmt"
	"os"

	"github.com/heymumma/heymumma/internal/account/app"
	"github.com/heymumma/heymumma/internal/cli"
)

var (
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cmd := cli.NewRootCommand(os.Stdout, cli.BuildInfo{
		Version:   app.BuildVersion,
		Commit:    commit,
		BuildTime: buildTime,
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "heymumma: %v\n", err)
		os.Exit(1)
	}
}
