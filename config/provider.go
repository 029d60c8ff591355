package config

import "github.com/google/wire"

// ProviderSet is the wire provider set for the config package.
// It provides the main *Config and extracts sub-configurations for
// other modules to use.
var ProviderSet = wire.NewSet(
	GetConfig,
	ProvideServerConfig,
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideWorkspaceConfig,
	ProvideSchemaConfig,
	ProvideResultsConfig,
)

// ProvideServerConfig provides the http server configuration.
func ProvideServerConfig(cfg *Config) *Server {
	if cfg == nil {
		return nil
	}
	return cfg.Server
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *Data {
	if cfg == nil {
		return nil
	}
	return cfg.Data
}

// ProvideWorkspaceConfig provides the workspace configuration.
func ProvideWorkspaceConfig(cfg *Config) *Workspace {
	if cfg == nil {
		return nil
	}
	return cfg.Workspace
}

// ProvideSchemaConfig provides the schema validator configuration.
func ProvideSchemaConfig(cfg *Config) *Schema {
	if cfg == nil {
		return nil
	}
	return cfg.Schema
}

// ProvideResultsConfig provides the result reader configuration.
func ProvideResultsConfig(cfg *Config) *Results {
	if cfg == nil {
		return nil
	}
	return cfg.Results
}
