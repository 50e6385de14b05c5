package config

import (
	"fmt"
	"net/url"
	"strings"
)

// placeholder marks tokens copied unchanged from the example config.
const placeholder = "XXXXXX"

// Validate checks the config for errors.
func Validate(cfg *Config) error {
	var errs []string

	errs = append(errs, checkSecret("slack.botToken", cfg.Slack.BotToken)...)
	errs = append(errs, checkSecret("slack.appToken", cfg.Slack.AppToken)...)
	if cfg.Slack.AppToken != "" && !strings.HasPrefix(cfg.Slack.AppToken, "xapp-") && !strings.Contains(cfg.Slack.AppToken, placeholder) {
		errs = append(errs, "slack.appToken must be an app-level token (xapp-...) for socket mode")
	}
	if strings.TrimSpace(cfg.Slack.BotUsername) == "" {
		errs = append(errs, "slack.botUsername is required")
	}
	if len(cfg.Slack.AllowedChannels) == 0 {
		errs = append(errs, "slack.allowedChannels must list at least one channel id")
	}
	for _, ch := range cfg.Slack.AllowedChannels {
		if unexpanded(ch) {
			errs = append(errs, fmt.Sprintf("slack.allowedChannels contains unexpanded variable %q", ch))
		}
	}

	if u, err := url.Parse(cfg.Zabbix.URL); cfg.Zabbix.URL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("zabbix.url must be an absolute http(s) URL (got %q)", cfg.Zabbix.URL))
	}
	errs = append(errs, checkSecret("zabbix.apiToken", cfg.Zabbix.APIToken)...)
	if cfg.Zabbix.Timeout <= 0 {
		errs = append(errs, "zabbix.timeout must be positive")
	}
	validAuth := map[string]bool{"body": true, "header": true}
	if !validAuth[cfg.Zabbix.AuthMethod] {
		errs = append(errs, fmt.Sprintf("zabbix.authMethod must be body or header (got %q)", cfg.Zabbix.AuthMethod))
	}
	if cfg.Zabbix.ProblemLimit < 0 {
		errs = append(errs, "zabbix.problemLimit must not be negative")
	}

	if cfg.Server.MetricsPort < 0 || cfg.Server.MetricsPort > 65535 {
		errs = append(errs, "server.metricsPort must be between 0 and 65535")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn, or error (got %q)", cfg.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be json or text (got %q)", cfg.Logging.Format))
	}
	if cfg.Logging.Output == "" {
		errs = append(errs, "logging.output is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func checkSecret(field, value string) []string {
	switch {
	case value == "":
		return []string{field + " is required"}
	case strings.Contains(value, placeholder):
		return []string{field + " still contains the " + placeholder + " placeholder"}
	case unexpanded(value):
		return []string{fmt.Sprintf("%s references an unset environment variable (%s)", field, value)}
	}
	return nil
}

func unexpanded(s string) bool {
	i := strings.Index(s, "${")
	return i >= 0 && strings.Contains(s[i:], "}")
}
