package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema (archivos SQL embebidos)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.MigrateUp(cmd.Context(), opts.databaseURL, migrationLogger()); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			opts.log.Info().Msg("migraciones aplicadas")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revierte la última migración",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.MigrateDown(cmd.Context(), opts.databaseURL, migrationLogger()); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			opts.log.Info().Msg("migración revertida")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Versión actual y migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := postgres.MigrationStatus(cmd.Context(), opts.databaseURL)
			if err != nil {
				return fmt.Errorf("migrate status: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "versión actual: %d\n", st.CurrentVersion)
			fmt.Fprintf(out, "migraciones:    %d\n", st.TotalMigrations)
			fmt.Fprintf(out, "pendientes:     %v\n", st.PendingMigrations)
			return nil
		},
	})
	return cmd
}

// migrationLogger el migrador solo acepta *slog.Logger.
func migrationLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
