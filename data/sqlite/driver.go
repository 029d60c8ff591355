// Package sqlite registers the SQLite registry driver, built on
// mattn/go-sqlite3 (cgo):
//
//	import _ "github.com/ncobase/calcgate/data/sqlite"
//
// Example sources:
//
//	"file:/db/modflow.db?_busy_timeout=5000"
//	"file::memory:?cache=shared"
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/data/config"
)

// sqlite serialises writers; one connection avoids SQLITE_BUSY on inserts.
const defaultMaxOpen = 1

type driver struct{}

func (driver) Name() string {
	return "sqlite"
}

func (driver) Open(ctx context.Context, node *config.DBNode) (*sql.DB, error) {
	if node == nil || node.Source == "" {
		return nil, errors.New("sqlite: connection source is empty")
	}

	db, err := sql.Open("sqlite3", node.Source)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	data.ConfigurePool(db, node, defaultMaxOpen)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

// Rebind keeps '?' placeholders, which sqlite3 understands natively.
func (driver) Rebind(query string) string {
	return query
}

// IsUniqueViolation reports a UNIQUE or PRIMARY KEY constraint failure.
func (driver) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func init() {
	data.RegisterDatabaseDriver(driver{})
}
