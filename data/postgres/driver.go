// Package postgres registers the PostgreSQL registry driver, built on pgx's
// database/sql adapter.
//
//	import _ "github.com/ncobase/calcgate/data/postgres"
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/data/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// uniqueViolation is the SQLSTATE of unique_violation.
const uniqueViolation = "23505"

type driver struct{}

func (driver) Name() string {
	return "postgres"
}

func (driver) Open(ctx context.Context, node *config.DBNode) (*sql.DB, error) {
	if node == nil || node.Source == "" {
		return nil, errors.New("postgres: connection source is empty")
	}

	db, err := sql.Open("pgx", node.Source)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	data.ConfigurePool(db, node, 0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return db, nil
}

func (driver) Rebind(query string) string {
	return data.RebindDollar(query)
}

func (driver) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func init() {
	data.RegisterDatabaseDriver(driver{})
}
