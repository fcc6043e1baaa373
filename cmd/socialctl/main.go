package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "socialctl",
		Short:         "Operate a Social API deployment",
		Long:          "Run schema migrations and manage accounts against the database and Redis configured in the environment or .env.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newMigrateCmd(), newCreateSuperuserCmd(), newUserCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(rootCmd, err)
		os.Exit(1)
	}
}
