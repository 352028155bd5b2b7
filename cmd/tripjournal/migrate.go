package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/tripjournal/internal/app"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
		Long:  `Apply, roll back or inspect the embedded goose migrations.`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := resolveDSN()
			if err != nil {
				return err
			}
			return app.MigrateUp(cmd.Context(), dsn, slog.Default())
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := resolveDSN()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), dsn, func(ctx context.Context, p *goose.Provider) error {
				res, err := p.Down(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d (%s)\n", res.Source.Version, res.Duration)
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := resolveDSN()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), dsn, func(ctx context.Context, p *goose.Provider) error {
				statuses, err := p.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					applied := "pending"
					if s.State == goose.StateApplied {
						applied = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%05d  %-40s %s\n", s.Source.Version, s.Source.Path, applied)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}
