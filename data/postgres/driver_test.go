package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ncobase/calcgate/data/config"
)

func TestDriverName(t *testing.T) {
	d := &driver{}
	if got := d.Name(); got != "postgres" {
		t.Errorf("Name() = %q, want %q", got, "postgres")
	}
}

func TestRebind(t *testing.T) {
	d := &driver{}
	got := d.Rebind("SELECT COUNT(*) FROM calculations WHERE state = ? AND calculation_id = ?")
	want := "SELECT COUNT(*) FROM calculations WHERE state = $1 AND calculation_id = $2"
	if got != want {
		t.Errorf("Rebind() = %q, want %q", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	d := &driver{}
	wrapped := fmt.Errorf("insert calculation: %w", &pgconn.PgError{Code: "23505"})
	if !d.IsUniqueViolation(wrapped) {
		t.Errorf("expected wrapped 23505 to be a unique violation")
	}
	if d.IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Errorf("foreign key violation must not count as unique violation")
	}
	if d.IsUniqueViolation(errors.New("boom")) {
		t.Errorf("plain error must not count as unique violation")
	}
}

func TestOpenRequiresSource(t *testing.T) {
	d := &driver{}
	if _, err := d.Open(context.Background(), &config.DBNode{Driver: "postgres"}); err == nil {
		t.Errorf("expected error for empty source")
	}
	if _, err := d.Open(context.Background(), nil); err == nil {
		t.Errorf("expected error for nil node")
	}
}
