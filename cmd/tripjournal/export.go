package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripjournal/internal/app"
	"github.com/pkordes/tripjournal/internal/config"
	"github.com/pkordes/tripjournal/internal/export"
	"github.com/pkordes/tripjournal/internal/service"
)

func newExportCmd() *cobra.Command {
	var (
		formatFlag  string
		outFlag     string
		backendFlag string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every trip, diary and expense as one flat table",
		Long: `Export one row per expense, with trip and diary fields repeated.
The memory backend exports the sample data; postgres exports the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var repos app.Repos
			switch config.Backend(backendFlag) {
			case config.BackendMemory:
				repos = app.NewMemoryRepos(true)
			case config.BackendPostgres:
				dsn, err := resolveDSN()
				if err != nil {
					return err
				}
				pool, err := app.OpenPool(ctx, dsn)
				if err != nil {
					return err
				}
				defer pool.Close()
				repos = app.NewPostgresRepos(pool)
			default:
				return fmt.Errorf("unknown backend %q", backendFlag)
			}

			rows, err := service.NewExportService(repos).Export(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outFlag != "" && outFlag != "-" {
				f, err := os.Create(outFlag)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := export.Encode(w, format, rows); err != nil {
				return err
			}
			if outFlag != "" && outFlag != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", len(rows), outFlag)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "json", "json, csv or xlsx")
	cmd.Flags().StringVar(&outFlag, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&backendFlag, "backend", string(config.BackendPostgres), "memory or postgres")
	return cmd
}
