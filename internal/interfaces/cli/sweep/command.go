package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"boardsync/internal/application/reconcile"
	"boardsync/internal/infrastructure/config"
	"boardsync/internal/infrastructure/database"
	"boardsync/internal/infrastructure/repository"
	"boardsync/internal/infrastructure/trello"
	sharedDB "boardsync/internal/shared/db"
	"boardsync/internal/shared/logger"
)

var (
	env     string
	timeout time.Duration
)

// NewCommand builds the one-shot reconciliation sweep. It walks every
// allowed board and pulls each card's state into the tracker, then pushes
// corrected titles back. Useful after downtime, when webhook deliveries
// were lost.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a full board reconciliation sweep",
		Long:  `Walk all allowed boards and reconcile every card against its tracker ticket.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Abort the sweep after this duration")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()

	ticketRepo := repository.NewTicketRepository(database.Get())
	boardClient := trello.NewClient(cfg.Trello, log)
	txManager := sharedDB.NewTransactionManager(database.Get())
	resolver := reconcile.NewResolver(ticketRepo, boardClient, log)
	engine := reconcile.NewEngine(ticketRepo, boardClient, resolver, txManager, &cfg.Trello, &cfg.Tracker, log)
	sweeper := reconcile.NewSweeper(engine, boardClient, &cfg.Trello, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := sweeper.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
