package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/simonhull/firebird-suite/kestrel"
	"github.com/simonhull/firebird-suite/kestrel/internal/commands"
	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.CreateCmd())
	rootCmd.AddCommand(commands.ListCmd())

	// fang overrides rootCmd.Version, so pass it explicitly.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(kestrel.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(kerrors.ExitCode(err))
	}
}
