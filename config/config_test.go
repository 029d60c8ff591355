package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigFromFile(t *testing.T) {
	p := writeConfig(t, `
app_name: gateway
server:
  host: 127.0.0.1
  port: 8088
data:
  database:
    master:
      driver: postgres
      source: postgres://localhost/calc
  redis:
    addr: localhost:6379
workspace:
  root: /tmp/modflow
schema:
  server: http://schema.local
  timeout: 3s
  unavailable_as_invalid: true
results:
  endpoint: http://reader.local
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AppName != "gateway" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if got := cfg.Server.Addr(); got != "127.0.0.1:8088" {
		t.Errorf("Server.Addr() = %q", got)
	}
	if cfg.Data.Database.Master.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Data.Database.Master.Driver)
	}
	if cfg.Data.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Data.Redis.Addr)
	}
	if cfg.Workspace.Root != "/tmp/modflow" {
		t.Errorf("workspace root = %q", cfg.Workspace.Root)
	}
	if cfg.Workspace.Uploads != "./uploads" {
		t.Errorf("workspace uploads default = %q", cfg.Workspace.Uploads)
	}
	if cfg.Schema.Timeout != 3*time.Second || !cfg.Schema.UnavailableAsInvalid {
		t.Errorf("schema = %+v", cfg.Schema)
	}
	if cfg.Schema.CacheTTL != time.Hour {
		t.Errorf("schema cache ttl default = %v", cfg.Schema.CacheTTL)
	}
	if cfg.Results.Reader != "remote" || cfg.Results.Endpoint != "http://reader.local" {
		t.Errorf("results = %+v", cfg.Results)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "app_name: x\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("default port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Data.Database.Master.Driver != "sqlite" || !cfg.Data.Database.Migrate {
		t.Errorf("database defaults = %+v", cfg.Data.Database)
	}
	if cfg.Schema.Server != "https://schema.inowas.com" {
		t.Errorf("schema server default = %q", cfg.Schema.Server)
	}
	if cfg.Schema.UnavailableAsInvalid {
		t.Error("unavailable_as_invalid defaults to true, want 503 on an unreachable schema server")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CALCGATE_SERVER_PORT", "9123")
	t.Setenv("CALCGATE_WORKSPACE_ROOT", "/srv/calc")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 8000\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 9123 {
		t.Errorf("port = %d, want env override 9123", cfg.Server.Port)
	}
	if cfg.Workspace.Root != "/srv/calc" {
		t.Errorf("workspace root = %q, want env override", cfg.Workspace.Root)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestProviders(t *testing.T) {
	if ProvideServerConfig(nil) != nil || ProvideSchemaConfig(nil) != nil {
		t.Error("providers must return nil for nil config")
	}
	cfg, err := LoadConfig(writeConfig(t, "app_name: x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if ProvideWorkspaceConfig(cfg) != cfg.Workspace || ProvideResultsConfig(cfg) != cfg.Results {
		t.Error("providers must return the sub-configurations")
	}
}
