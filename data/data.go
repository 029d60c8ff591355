// Package data opens the registry database and the optional redis client
// through the drivers registered by its sub packages.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncobase/calcgate/data/config"
	"github.com/redis/go-redis/v9"
)

// Data holds the open connections.
type Data struct {
	DB    *sql.DB
	Redis *redis.Client

	driver DatabaseDriver
}

// New opens the configured database and, when an address is set, redis.
// Migrations run when the configuration asks for it.
func New(ctx context.Context, cfg *config.Config) (*Data, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	driver, err := GetDatabaseDriver(cfg.Database.Master.Driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := driver.Open(ctx, cfg.Database.Master)
	if err != nil {
		return nil, nil, err
	}
	d := &Data{DB: db, driver: driver}

	if cfg.RedisEnabled() {
		cd, err := GetCacheDriver("redis")
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		if d.Redis, err = cd.Open(ctx, cfg.Redis); err != nil {
			d.Close()
			return nil, nil, err
		}
	}

	if cfg.Database.Migrate {
		if err := d.Migrate(ctx); err != nil {
			d.Close()
			return nil, nil, err
		}
	}

	cleanup := func() {
		if err := d.Close(); err != nil {
			fmt.Printf("data cleanup: %v\n", err)
		}
	}
	return d, cleanup, nil
}

// Dialect returns the SQL dialect of the connected database.
func (d *Data) Dialect() Dialect {
	return d.driver
}

// DriverName returns the name of the database driver in use.
func (d *Data) DriverName() string {
	return d.driver.Name()
}

// Ping checks the database and, when connected, redis.
func (d *Data) Ping(ctx context.Context) error {
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", d.driver.Name(), err)
	}
	if d.Redis != nil {
		if err := d.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close closes all connections.
func (d *Data) Close() error {
	var errs []error
	if d.Redis != nil {
		errs = append(errs, d.Redis.Close())
		d.Redis = nil
	}
	if d.DB != nil {
		errs = append(errs, d.DB.Close())
		d.DB = nil
	}
	return errors.Join(errs...)
}
