// Package config holds the settings of the registry database and the
// optional redis connection, read from the data.* keys.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// ErrNoDatabase is returned by Validate when no database node is set.
var ErrNoDatabase = errors.New("data: database configuration is missing")

// Config is the data section.
type Config struct {
	Database *Database `json:"database" yaml:"database"`
	Redis    *Redis    `json:"redis" yaml:"redis"`
}

// Database holds the registry node and whether migrations run on connect.
type Database struct {
	Master  *DBNode `json:"master" yaml:"master"`
	Migrate bool    `json:"migrate" yaml:"migrate"`
}

// DBNode is one database connection.
type DBNode struct {
	Driver          string        `json:"driver" yaml:"driver"`
	Source          string        `json:"source" yaml:"source"`
	MaxIdleConn     int           `json:"max_idle_conn" yaml:"max_idle_conn"`
	MaxOpenConn     int           `json:"max_open_conn" yaml:"max_open_conn"`
	ConnMaxLifeTime time.Duration `json:"max_life_time" yaml:"max_life_time"`
}

// Redis is the connection backing the schema cache. An empty Addr
// disables redis.
type Redis struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Username     string        `json:"username" yaml:"username"`
	Password     string        `json:"password" yaml:"password"`
	Db           int           `json:"db" yaml:"db"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// Validate checks that a database node with a driver is configured.
func (c *Config) Validate() error {
	if c == nil || c.Database == nil || c.Database.Master == nil || c.Database.Master.Driver == "" {
		return ErrNoDatabase
	}
	return nil
}

// RedisEnabled reports whether a redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c != nil && c.Redis != nil && c.Redis.Addr != ""
}

// GetConfig reads the data section of v.
func GetConfig(v *viper.Viper) *Config {
	node := func(key string) *DBNode {
		return &DBNode{
			Driver:          v.GetString(key + ".driver"),
			Source:          v.GetString(key + ".source"),
			MaxIdleConn:     v.GetInt(key + ".max_idle_conn"),
			MaxOpenConn:     v.GetInt(key + ".max_open_conn"),
			ConnMaxLifeTime: v.GetDuration(key + ".max_life_time"),
		}
	}

	return &Config{
		Database: &Database{
			Master:  node("data.database.master"),
			Migrate: v.GetBool("data.database.migrate"),
		},
		Redis: &Redis{
			Addr:         v.GetString("data.redis.addr"),
			Username:     v.GetString("data.redis.username"),
			Password:     v.GetString("data.redis.password"),
			Db:           v.GetInt("data.redis.db"),
			ReadTimeout:  v.GetDuration("data.redis.read_timeout"),
			WriteTimeout: v.GetDuration("data.redis.write_timeout"),
			DialTimeout:  v.GetDuration("data.redis.dial_timeout"),
		},
	}
}
