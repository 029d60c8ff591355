package config

import (
	"time"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "calcgate")
	v.SetDefault("run_mode", "release")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)

	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("data.database.master.driver", "sqlite")
	v.SetDefault("data.database.master.source", "file:/db/modflow.db?_busy_timeout=5000")
	v.SetDefault("data.database.migrate", true)

	v.SetDefault("workspace.root", "/modflow")
	v.SetDefault("workspace.uploads", "./uploads")

	v.SetDefault("schema.server", "https://schema.inowas.com")
	v.SetDefault("schema.timeout", 10*time.Second)
	v.SetDefault("schema.cache_ttl", time.Hour)
	v.SetDefault("schema.unavailable_as_invalid", false)

	v.SetDefault("results.reader", "remote")
	v.SetDefault("results.endpoint", "http://localhost:5001")
	v.SetDefault("results.timeout", 30*time.Second)
}
