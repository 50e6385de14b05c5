package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Slack   SlackConfig   `yaml:"slack"`
	Zabbix  ZabbixConfig  `yaml:"zabbix"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type SlackConfig struct {
	BotToken        string      `yaml:"botToken"`
	AppToken        string      `yaml:"appToken"`
	BotUsername     string      `yaml:"botUsername"`
	AllowedChannels ChannelList `yaml:"allowedChannels"`
	Debug           bool        `yaml:"debug"`
}

type ZabbixConfig struct {
	URL          string        `yaml:"url"`
	APIToken     string        `yaml:"apiToken"`
	Timeout      time.Duration `yaml:"timeout"`
	AuthMethod   string        `yaml:"authMethod"`
	ProblemLimit int           `yaml:"problemLimit"`
}

type ServerConfig struct {
	MetricsPort     int           `yaml:"metricsPort"`
	MetricsToken    string        `yaml:"metricsToken"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// ChannelList is a set of channel ids. In YAML it is either a sequence or a
// single comma-separated string, so "${ALLOWED_CHANNELS}" works.
type ChannelList []string

func (c *ChannelList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*c = splitChannels(strings.Split(raw, ","))
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*c = splitChannels(raw)
		return nil
	default:
		return fmt.Errorf("line %d: allowedChannels must be a list or a comma-separated string", node.Line)
	}
}

func splitChannels(raw []string) ChannelList {
	out := make(ChannelList, 0, len(raw))
	for _, ch := range raw {
		if ch = strings.TrimSpace(ch); ch != "" {
			out = append(out, ch)
		}
	}
	return out
}

// Load reads a YAML config file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. Call it before Load.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Slack: SlackConfig{
			BotUsername: "zabbix",
		},
		Zabbix: ZabbixConfig{
			Timeout:    30 * time.Second,
			AuthMethod: "body",
		},
		Server: ServerConfig{
			MetricsPort:     9090,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}
