package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	cli "github.com/idlab-discover/EconCluster-cli/cmd/econcluster-cli"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cli.SetVersion(version)
	return cli.ExitCode(fang.Execute(ctx, cli.GetRootCmd(),
		fang.WithColorSchemeFunc(ui.FangColorScheme),
	))
}
