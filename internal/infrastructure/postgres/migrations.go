package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/stokaro/ptah/dbschema"
	"github.com/stokaro/ptah/migration/migrator"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations devuelve el FS con los archivos NNNNNNNNNN_nombre.{up,down}.sql en la raíz.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(fmt.Sprintf("migrations fs: %v", err))
	}
	return sub
}

// Migrator abre una conexión con ptah y prepara el migrador. El llamador debe invocar close.
func Migrator(databaseURL string, log *slog.Logger) (m *migrator.Migrator, closeFn func() error, err error) {
	conn, err := dbschema.ConnectToDatabase(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect for migrations: %w", err)
	}
	m, err = migrator.NewFSMigrator(conn, Migrations())
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("load migrations: %w", err)
	}
	if log != nil {
		m = m.WithLogger(log)
	}
	return m, conn.Close, nil
}

// MigrateUp aplica todas las migraciones pendientes.
func MigrateUp(ctx context.Context, databaseURL string, log *slog.Logger) error {
	m, closeFn, err := Migrator(databaseURL, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()
	return m.MigrateUp(ctx)
}

// MigrateDown revierte la última migración aplicada.
func MigrateDown(ctx context.Context, databaseURL string, log *slog.Logger) error {
	m, closeFn, err := Migrator(databaseURL, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()
	return m.MigrateDown(ctx)
}

// MigrationStatus versión actual y migraciones pendientes.
func MigrationStatus(ctx context.Context, databaseURL string) (*migrator.MigrationStatus, error) {
	m, closeFn, err := Migrator(databaseURL, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFn() }()
	return m.GetMigrationStatus(ctx)
}
