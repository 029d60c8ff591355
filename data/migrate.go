package data

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/ncobase/calcgate/data/migrations"
)

// Migrate applies the embedded migrations of the connected driver that have
// not been recorded in schema_migrations yet.
func (d *Data) Migrate(ctx context.Context) error {
	migFS, err := fs.Sub(migrations.Files, d.DriverName())
	if err != nil {
		return fmt.Errorf("data: no migrations for driver %s: %w", d.DriverName(), err)
	}

	if _, err := d.DB.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL)`,
	); err != nil {
		return fmt.Errorf("data: create schema_migrations: %w", err)
	}

	files, err := listMigrationFiles(migFS)
	if err != nil {
		return err
	}
	for _, file := range files {
		applied, err := d.isMigrationApplied(ctx, file)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := d.applyMigration(ctx, migFS, file); err != nil {
			return err
		}
	}
	return nil
}

func (d *Data) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var n int
	err := d.DB.QueryRowContext(ctx,
		d.Dialect().Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`), version,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("data: check migration %s: %w", version, err)
	}
	return n > 0, nil
}

func (d *Data) applyMigration(ctx context.Context, migFS fs.FS, file string) error {
	sqlBytes, err := fs.ReadFile(migFS, file)
	if err != nil {
		return err
	}
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("apply migration %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx,
		d.Dialect().Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`),
		file, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration %s: %w", file, err)
	}
	return tx.Commit()
}

func listMigrationFiles(migFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migFS, ".")
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
