package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CALCGATE_SERVER_PORT.
const EnvPrefix = "CALCGATE"

var (
	config *Config
	path   string
	mu     sync.Mutex
	v      = viper.New()
)

// Config represents the configuration implementation.
type Config struct {
	AppName   string
	RunMode   string
	Server    *Server
	Logger    *Logger
	Data      *Data
	Workspace *Workspace
	Schema    *Schema
	Results   *Results
	Viper     *viper.Viper
}

// SetPath sets the configuration file used by GetConfig and Reload.
// An empty path searches the default locations.
func SetPath(p string) {
	mu.Lock()
	defer mu.Unlock()
	path = p
	config = nil
}

// GetConfig returns the configuration, loading it on first use.
// It does not handle errors internally; instead, it returns the error for the caller to handle.
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if config == nil {
		cfg, err := load(v, path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
		config = cfg
	}
	return config, nil
}

// LoadConfig loads the configuration from the file into a fresh viper
// instance. A missing file is only an error when configPath is set.
func LoadConfig(configPath string) (*Config, error) {
	return load(viper.New(), configPath)
}

func load(vp *viper.Viper, configPath string) (*Config, error) {
	setDefaults(vp)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if configPath != "" {
		vp.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		vp.SetConfigName("config")
		vp.AddConfigPath("/etc/calcgate")
		vp.AddConfigPath("$HOME/.calcgate")
		vp.AddConfigPath(".")
		vp.AddConfigPath(filepath.Dir(ex))
	}

	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(vp), nil
}

func fromViper(vp *viper.Viper) *Config {
	return &Config{
		AppName:   vp.GetString("app_name"),
		RunMode:   vp.GetString("run_mode"),
		Server:    getServerConfig(vp),
		Logger:    getLoggerConfig(vp),
		Data:      getDataConfig(vp),
		Workspace: getWorkspaceConfig(vp),
		Schema:    getSchemaConfig(vp),
		Results:   getResultsConfig(vp),
		Viper:     vp,
	}
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config = fromViper(v)
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}
		mu.Lock()
		cfg := config
		mu.Unlock()
		callback(cfg)
	})
	v.WatchConfig()
}
