// Package redis registers the go-redis cache driver with the data layer.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/data/config"
	"github.com/redis/go-redis/v9"
)

type driver struct{}

func (driver) Name() string {
	return "redis"
}

func (driver) Open(ctx context.Context, cfg *config.Redis) (*redis.Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.Db,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		DialTimeout:  cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func init() {
	data.RegisterCacheDriver(driver{})
}
