// Package config loads the gateway configuration using Viper with support for
// environment variables and hot-reloading.
//
// # Configuration Loading
//
// The file is looked up as config.{yaml,json,toml} in /etc/calcgate,
// $HOME/.calcgate, the working directory and the executable's directory,
// unless a path is given:
//
//	config.SetPath("./config.yaml")
//	cfg, err := config.GetConfig()
//
// # Configuration Format
//
//	server:
//	  host: 0.0.0.0
//	  port: 5000
//	data:
//	  database:
//	    master:
//	      driver: sqlite
//	      source: file:/db/modflow.db?_busy_timeout=5000
//	workspace:
//	  root: /modflow
//	schema:
//	  server: https://schema.inowas.com
//	results:
//	  reader: remote
//	  endpoint: http://reader:5001
//
// # Environment Variables
//
// Every key can be overridden with the CALCGATE_ prefix and dots replaced by
// underscores:
//
//	export CALCGATE_SERVER_PORT=9000
//	export CALCGATE_WORKSPACE_ROOT=/data/modflow
//
// # Hot Reloading
//
//	config.Watch(func(cfg *config.Config) {
//	    logger.StdLogger().ApplyLevel(cfg.Logger.Level)
//	})
package config
