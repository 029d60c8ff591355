package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestGetConfigReadsDatabaseAndRedis(t *testing.T) {
	v := viper.New()
	v.Set("data.database.migrate", true)
	v.Set("data.database.master.driver", "sqlite")
	v.Set("data.database.master.source", "file:calcgate.db?_busy_timeout=5000")
	v.Set("data.database.master.max_open_conn", 1)
	v.Set("data.database.master.max_life_time", "30m")
	v.Set("data.redis.addr", "localhost:6379")
	v.Set("data.redis.db", 2)

	cfg := GetConfig(v)
	if !cfg.Database.Migrate {
		t.Errorf("expected migrate to be enabled")
	}
	if cfg.Database.Master.Driver != "sqlite" || cfg.Database.Master.MaxOpenConn != 1 {
		t.Errorf("unexpected master node %+v", cfg.Database.Master)
	}
	if cfg.Database.Master.ConnMaxLifeTime != 30*time.Minute {
		t.Errorf("max life time = %v", cfg.Database.Master.ConnMaxLifeTime)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Db != 2 {
		t.Errorf("unexpected redis config %+v", cfg.Redis)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		ok   bool
	}{
		{"nil", nil, false},
		{"no database", &Config{}, false},
		{"no driver", &Config{Database: &Database{Master: &DBNode{Source: "x"}}}, false},
		{"sqlite", &Config{Database: &Database{Master: &DBNode{Driver: "sqlite"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok %v", err, tt.ok)
			}
		})
	}
}

func TestRedisEnabled(t *testing.T) {
	if (&Config{Redis: &Redis{}}).RedisEnabled() {
		t.Error("empty address enabled redis")
	}
	if !(&Config{Redis: &Redis{Addr: "localhost:6379"}}).RedisEnabled() {
		t.Error("address did not enable redis")
	}
}
