package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripjournal/internal/app"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample trips into an empty Postgres store",
		Long: `Insert the fixture trips, diaries, expenses, categories, budgets and notes
in one transaction. A store that already holds trips is left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := resolveDSN()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := app.OpenPool(ctx, dsn)
			if err != nil {
				return err
			}
			defer pool.Close()

			wrote, err := app.SeedPostgres(ctx, pool)
			if err != nil {
				return err
			}
			if wrote {
				fmt.Fprintln(cmd.OutOrStdout(), "fixtures loaded")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "store not empty, nothing loaded")
			}
			return nil
		},
	}
}
