// Package repository provides calculation persistence for the gateway.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/logging/logger"
)

// State is the lifecycle state of a calculation.
type State int

const (
	StateQueued    State = 0
	StateRunning   State = 100
	StateSucceeded State = 200
	StateFailed    State = 400
)

// States lists every known state in lifecycle order.
var States = []State{StateQueued, StateRunning, StateSucceeded, StateFailed}

// String returns a readable name of the state.
func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNotFound is returned when no record exists for a calculation id.
	ErrNotFound = errors.New("calculation not found")
	// ErrDuplicate is returned when a record for the calculation id already exists.
	ErrDuplicate = errors.New("calculation already registered")
)

// Calculation is one registry record.
type Calculation struct {
	ID        string    `json:"calculation_id"`
	State     State     `json:"state"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalculationRepository defines the registry operations.
type CalculationRepository interface {
	Insert(ctx context.Context, id string, state State, createdAt, updatedAt time.Time) error
	GetByID(ctx context.Context, id string) (*Calculation, error)
	CountByState(ctx context.Context, state State) (int, error)
	CountByID(ctx context.Context, id string) (int, error)
	List(ctx context.Context) ([]*Calculation, error)
	Requeue(ctx context.Context, id string, updatedAt time.Time) error
}

type calculationRepository struct {
	db      *sql.DB
	dialect data.Dialect
	logger  *logger.Logger
}

// NewCalculationRepository creates a registry over the data layer.
func NewCalculationRepository(d *data.Data, logger *logger.Logger) CalculationRepository {
	return &calculationRepository{
		db:      d.DB,
		dialect: d.Dialect(),
		logger:  logger,
	}
}

// Insert appends a record for id.
func (r *calculationRepository) Insert(ctx context.Context, id string, state State, createdAt, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		r.dialect.Rebind(`INSERT INTO calculations (calculation_id, state, created_at, updated_at) VALUES (?, ?, ?, ?)`),
		id, int(state), createdAt.UTC(), updatedAt.UTC(),
	)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		r.logger.Errorf(ctx, "failed to insert calculation %s: %v", id, err)
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	r.logger.Infof(ctx, "calculation %s registered with state %d", id, int(state))
	return nil
}

// Requeue puts the existing record of id back into the queued state and
// clears its message. It is the conflict path of a resubmission.
func (r *calculationRepository) Requeue(ctx context.Context, id string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		r.dialect.Rebind(`UPDATE calculations SET state = ?, message = NULL, updated_at = ? WHERE calculation_id = ?`),
		int(StateQueued), updatedAt.UTC(), id,
	)
	if err != nil {
		r.logger.Errorf(ctx, "failed to requeue calculation %s: %v", id, err)
		return fmt.Errorf("failed to requeue calculation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	r.logger.Infof(ctx, "calculation %s requeued", id)
	return nil
}

// GetByID retrieves the record of id.
func (r *calculationRepository) GetByID(ctx context.Context, id string) (*Calculation, error) {
	row := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT calculation_id, state, message, created_at, updated_at FROM calculations WHERE calculation_id = ?`),
		id,
	)

	c, err := scanCalculation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to get calculation %s: %v", id, err)
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return c, nil
}

// CountByState returns the number of records in state.
func (r *calculationRepository) CountByState(ctx context.Context, state State) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT COUNT(*) FROM calculations WHERE state = ?`), int(state),
	).Scan(&n)
	if err != nil {
		r.logger.Errorf(ctx, "failed to count calculations in state %d: %v", int(state), err)
		return 0, fmt.Errorf("failed to count calculations: %w", err)
	}
	return n, nil
}

// CountByID returns the number of records for id.
func (r *calculationRepository) CountByID(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT COUNT(*) FROM calculations WHERE calculation_id = ?`), id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count calculation: %w", err)
	}
	return n, nil
}

// List returns all records, oldest first.
func (r *calculationRepository) List(ctx context.Context) ([]*Calculation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT calculation_id, state, message, created_at, updated_at FROM calculations ORDER BY id`,
	)
	if err != nil {
		r.logger.Errorf(ctx, "failed to list calculations: %v", err)
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	out := []*Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (*Calculation, error) {
	var (
		c       Calculation
		state   int
		message sql.NullString
	)
	if err := s.Scan(&c.ID, &state, &message, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.State = State(state)
	c.Message = message.String
	return &c, nil
}
