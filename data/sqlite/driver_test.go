package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/data/config"
)

func newData(t *testing.T) *data.Data {
	t.Helper()

	src := "file:" + filepath.Join(t.TempDir(), "test.db")
	d, cleanup, err := data.New(context.Background(), &config.Config{
		Database: &config.Database{
			Master: &config.DBNode{Driver: "sqlite", Source: src},
		},
	})
	if err != nil {
		t.Fatalf("data.New() error = %v", err)
	}
	t.Cleanup(cleanup)
	return d
}

func TestMigrateIsIdempotent(t *testing.T) {
	d := newData(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := d.Migrate(ctx); err != nil {
			t.Fatalf("Migrate() run %d error = %v", i+1, err)
		}
	}

	var applied int
	if err := d.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied migrations = %d, want 2", applied)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	d := newData(t)
	ctx := context.Background()

	if err := d.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	insert := `INSERT INTO calculations (calculation_id, state, created_at, updated_at) VALUES ('x', 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	if _, err := d.DB.ExecContext(ctx, insert); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := d.DB.ExecContext(ctx, insert)
	if err == nil {
		t.Fatal("expected unique violation on second insert")
	}
	if !d.Dialect().IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
	if d.Dialect().IsUniqueViolation(errors.New("other")) {
		t.Errorf("plain error reported as unique violation")
	}
	if d.Dialect().IsUniqueViolation(sql.ErrNoRows) {
		t.Errorf("sql.ErrNoRows reported as unique violation")
	}
}

func TestRebindKeepsQuestionMarks(t *testing.T) {
	d := &driver{}
	q := "SELECT * FROM calculations WHERE calculation_id = ?"
	if got := d.Rebind(q); got != q {
		t.Errorf("Rebind() = %q, want unchanged", got)
	}
}
