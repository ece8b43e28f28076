package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Targets []TargetConfig `mapstructure:"targets"`
	Backup  BackupConfig   `mapstructure:"backup"`
	Notify  NotifyConfig   `mapstructure:"notify"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`

	// Cron spec (with seconds). Empty means run once and exit with the
	// 0/1 status contract; external scheduling owns the retry cycle.
	Schedule string `mapstructure:"schedule"`
}

type TargetConfig struct {
	Name string `mapstructure:"name"`
	User string `mapstructure:"user"`
}

type BackupConfig struct {
	Dir            string        `mapstructure:"dir"`
	RetentionDays  int           `mapstructure:"retention_days"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "docker-pg-dump-auto")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("backup.retention_days", 7)
	v.SetDefault("backup.command_timeout", "5m")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target is required")
	}

	for i, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("target[%d]: name is required", i)
		}
		if strings.ContainsAny(t.Name, "/\\ ") {
			return fmt.Errorf("target[%d]: name %q must not contain separators or spaces", i, t.Name)
		}
		if t.User == "" {
			return fmt.Errorf("target[%d]: user is required", i)
		}
	}

	if c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is required")
	}
	if c.Backup.RetentionDays < 1 {
		return fmt.Errorf("backup.retention_days must be at least 1")
	}
	if c.Backup.CommandTimeout <= 0 {
		return fmt.Errorf("backup.command_timeout must be positive")
	}

	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.BotToken == "" {
			return fmt.Errorf("notify.telegram.bot_token is required when enabled")
		}
		if c.Notify.Telegram.ChatID == 0 {
			return fmt.Errorf("notify.telegram.chat_id is required when enabled")
		}
	}

	return nil
}

// LogFile returns the log path, kept next to the artifacts themselves.
func (c *Config) LogFile() string {
	return filepath.Join(c.Backup.Dir, "backup.log")
}
