package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

type rootOptions struct {
	databaseURL string
	cfg         *config.Config
	log         *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operación del libro de inventario (migraciones, nodos virtuales, datos demo)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			opts.cfg = cfg
			if opts.databaseURL == "" {
				opts.databaseURL = cfg.DB.ConnectionString()
			}
			opts.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "ledgerctl"})
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "Connection string de PostgreSQL (por defecto DATABASE_URL / DB_*)")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newBootstrapCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// ledger casos de uso sobre PostgreSQL para los subcomandos que escriben datos.
type ledger struct {
	tx    ports.TxRunner
	repos ports.Repositories
	close func()
}

func (o *rootOptions) openLedger(ctx context.Context) (*ledger, error) {
	dbCfg := o.cfg.DB
	dbCfg.DatabaseURL = o.databaseURL
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &ledger{
		tx:    postgres.NewTxRunner(pool),
		repos: postgres.NewRepositories(pool),
		close: pool.Close,
	}, nil
}

func (l *ledger) registry(log *logger.Logger) *inventory.NodeRegistry {
	return inventory.NewNodeRegistry(l.tx, l.repos, log)
}

func orgFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "org", "", "UUID de la organización (requerido)")
	_ = cmd.MarkFlagRequired("org")
}

func parseOrg(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("--org inválido: %w", err)
	}
	return id.String(), nil
}
