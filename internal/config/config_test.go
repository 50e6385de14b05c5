package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// validConfig returns a DefaultConfig with every required field set.
func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Slack.BotToken = "xoxb-123"
	cfg.Slack.AppToken = "xapp-1-456"
	cfg.Slack.AllowedChannels = ChannelList{"C0123"}
	cfg.Zabbix.URL = "https://zabbix.example.com/api_jsonrpc.php"
	cfg.Zabbix.APIToken = "abcdef"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Zabbix.Timeout != 30*time.Second {
		t.Errorf("expected zabbix.timeout 30s, got %v", cfg.Zabbix.Timeout)
	}
	if cfg.Zabbix.AuthMethod != "body" {
		t.Errorf("expected zabbix.authMethod body, got %q", cfg.Zabbix.AuthMethod)
	}
	if cfg.Server.MetricsPort != 9090 {
		t.Errorf("expected server.metricsPort 9090, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("expected server.shutdownTimeout 15s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging.level info, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging.format json, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("expected logging.output stdout, got %q", cfg.Logging.Output)
	}
}

func TestLoad(t *testing.T) {
	yaml := `
slack:
  botToken: "xoxb-1"
  appToken: "xapp-1"
  botUsername: "zbx"
  allowedChannels:
    - C01
    - " C02 "
zabbix:
  url: "http://zabbix.local/api_jsonrpc.php"
  apiToken: "tok"
  authMethod: header
  problemLimit: 25
server:
  metricsPort: 0
logging:
  format: text
`
	f := writeTempYAML(t, yaml)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Slack.BotUsername != "zbx" {
		t.Errorf("expected botUsername zbx, got %q", cfg.Slack.BotUsername)
	}
	if !reflect.DeepEqual([]string(cfg.Slack.AllowedChannels), []string{"C01", "C02"}) {
		t.Errorf("unexpected allowedChannels %v", cfg.Slack.AllowedChannels)
	}
	if cfg.Zabbix.AuthMethod != "header" {
		t.Errorf("expected authMethod header, got %q", cfg.Zabbix.AuthMethod)
	}
	if cfg.Zabbix.ProblemLimit != 25 {
		t.Errorf("expected problemLimit 25, got %d", cfg.Zabbix.ProblemLimit)
	}
	if cfg.Server.MetricsPort != 0 {
		t.Errorf("expected metricsPort 0, got %d", cfg.Server.MetricsPort)
	}
	// Verify defaults still apply to unset fields
	if cfg.Zabbix.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Zabbix.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default level info, got %q", cfg.Logging.Level)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	f := writeTempYAML(t, ":::invalid yaml:::")
	_, err := Load(f)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	f := writeTempYAML(t, "slack:\n  botToken: xoxb-1\n")
	_, err := Load(f)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "zabbix.url") {
		t.Errorf("expected zabbix.url in error, got: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_TOKEN", "secret-token-123")
	t.Setenv("TEST_PORT", "9999")

	input := "token: ${TEST_TOKEN}\nport: ${TEST_PORT}\nmissing: ${MISSING_VAR}"
	result := expandEnvVars(input)

	if result != "token: secret-token-123\nport: 9999\nmissing: ${MISSING_VAR}" {
		t.Errorf("unexpected expansion result:\n%s", result)
	}
}

func TestExpandEnvVars_InLoad(t *testing.T) {
	t.Setenv("ZBX_TOKEN", "from-env")
	t.Setenv("ZBX_CHANNELS", "C1, C2,,C3")

	yaml := `
slack:
  botToken: "xoxb-1"
  appToken: "xapp-1"
  allowedChannels: "${ZBX_CHANNELS}"
zabbix:
  url: "https://zabbix.local/api_jsonrpc.php"
  apiToken: "${ZBX_TOKEN}"
`
	f := writeTempYAML(t, yaml)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Zabbix.APIToken != "from-env" {
		t.Errorf("expected env-expanded token, got %q", cfg.Zabbix.APIToken)
	}
	if !reflect.DeepEqual([]string(cfg.Slack.AllowedChannels), []string{"C1", "C2", "C3"}) {
		t.Errorf("unexpected allowedChannels %v", cfg.Slack.AllowedChannels)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("ZBX_ENVFILE_TOKEN=dotenv-token\n"), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Setenv("ZBX_ENVFILE_TOKEN", "")
	os.Unsetenv("ZBX_ENVFILE_TOKEN")

	if err := LoadEnvFile(envFile); err != nil {
		t.Fatalf("LoadEnvFile() error: %v", err)
	}
	if got := os.Getenv("ZBX_ENVFILE_TOKEN"); got != "dotenv-token" {
		t.Errorf("expected dotenv-token, got %q", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile("/nonexistent/.env"); err == nil {
		t.Error("expected error for missing env file, got nil")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing bot token", func(c *Config) { c.Slack.BotToken = "" }, "slack.botToken is required"},
		{"placeholder bot token", func(c *Config) { c.Slack.BotToken = "xoxb-XXXXXX" }, "placeholder"},
		{"placeholder app token", func(c *Config) { c.Slack.AppToken = "xapp-XXXXXX" }, "slack.appToken still contains"},
		{"bot token as app token", func(c *Config) { c.Slack.AppToken = "xoxb-1" }, "app-level token"},
		{"unexpanded api token", func(c *Config) { c.Zabbix.APIToken = "${ZABBIX_TOKEN}" }, "unset environment variable"},
		{"no channels", func(c *Config) { c.Slack.AllowedChannels = nil }, "slack.allowedChannels"},
		{"unexpanded channel", func(c *Config) { c.Slack.AllowedChannels = ChannelList{"${CH}"} }, "unexpanded"},
		{"empty username", func(c *Config) { c.Slack.BotUsername = " " }, "slack.botUsername"},
		{"relative url", func(c *Config) { c.Zabbix.URL = "zabbix/api_jsonrpc.php" }, "zabbix.url"},
		{"ftp url", func(c *Config) { c.Zabbix.URL = "ftp://zabbix" }, "zabbix.url"},
		{"zero timeout", func(c *Config) { c.Zabbix.Timeout = 0 }, "zabbix.timeout"},
		{"bad auth method", func(c *Config) { c.Zabbix.AuthMethod = "cookie" }, "zabbix.authMethod"},
		{"negative limit", func(c *Config) { c.Zabbix.ProblemLimit = -1 }, "zabbix.problemLimit"},
		{"port too high", func(c *Config) { c.Server.MetricsPort = 70000 }, "server.metricsPort"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	err := Validate(DefaultConfig())
	if err == nil {
		t.Fatal("expected validation error for empty config, got nil")
	}
	for _, field := range []string{"slack.botToken", "slack.appToken", "slack.allowedChannels", "zabbix.url", "zabbix.apiToken"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in error, got: %v", field, err)
		}
	}
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	f := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(f, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp yaml: %v", err)
	}
	return f
}
