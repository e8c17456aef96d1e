package main

import (
	"os"

	"github.com/spf13/cobra"

	"boardsync/internal/interfaces/cli/migrate"
	"boardsync/internal/interfaces/cli/server"
	"boardsync/internal/interfaces/cli/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boardsync",
		Short: "Boardsync - tracker and kanban board synchronization",
		Long:  `Boardsync keeps issue tracker tickets and kanban board cards in sync, in both directions.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		sweep.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
