package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/cli"
)

var (
	// Информация о версии задается через ldflags при сборке
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
