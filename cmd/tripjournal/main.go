// Command tripjournal is the operator CLI: schema migrations, fixture seeding
// and data export.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripjournal/internal/config"
)

// databaseURL overrides DATABASE_URL for a single invocation.
var databaseURL string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripjournal",
		Short:         "Operate the trip journal data store",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (defaults to DATABASE_URL)")

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newExportCmd())
	return root
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveDSN returns --database-url, else DATABASE_URL from the environment
// or .env file.
func resolveDSN() (string, error) {
	if databaseURL != "" {
		return databaseURL, nil
	}
	cfg, err := config.Load()
	if err == nil && cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no database: set DATABASE_URL or pass --database-url")
}
