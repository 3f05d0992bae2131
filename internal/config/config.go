// Package config manages application configuration from default values,
// an optional config.yaml file, and BOT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// BotInfo holds the bot's own identity as reported by the Telegram API.
// It is resolved at startup and not part of the configuration file.
type BotInfo struct {
	ID        int64
	Username  string
	FirstName string
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds transport settings and user-facing notice texts.
type TelegramConfig struct {
	Token    string         `mapstructure:"token" validate:"required"`
	Messages MessagesConfig `mapstructure:"messages"`

	// BotInfo is populated at runtime via GetMe, never from the file.
	BotInfo BotInfo `mapstructure:"-"`
}

// MessagesConfig holds every text the bot sends on its own behalf.
// The defaults mirror the audience language of the analysis reports.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"            validate:"required"`
	Starting          string `mapstructure:"starting"           validate:"required"`
	Empty             string `mapstructure:"empty"              validate:"required"`
	StorageError      string `mapstructure:"storage_error"      validate:"required"`
	AnalysisFailedFmt string `mapstructure:"analysis_failed"    validate:"required,contains=%s"`
	Complete          string `mapstructure:"complete"           validate:"required"`
	AlreadyRunning    string `mapstructure:"already_running"    validate:"required"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AIConfig selects and configures the external analysis engine.
type AIConfig struct {
	Backend     string        `mapstructure:"backend"     validate:"required,oneof=openai gemini"`
	Token       string        `mapstructure:"token"       validate:"required"`
	BaseURL     string        `mapstructure:"base_url"    validate:"omitempty,url"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxTokens   int           `mapstructure:"max_tokens"  validate:"required,min=1"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"required,min=1s,max=10m"`
}

// ArtifactsConfig controls the transient artifact directory and its retention.
type ArtifactsConfig struct {
	Dir string        `mapstructure:"dir" validate:"required"`
	TTL time.Duration `mapstructure:"ttl" validate:"required,min=1m"`
}

// TaskConfig describes a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// Config is the root application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// Load reads configuration in priority order: defaults, then the YAML file
// at path (missing file is not an error), then BOT_* environment variables.
// The result is validated before being returned.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		// Missing file is fine: defaults plus environment variables apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("database.path", "messages.db")

	v.SetDefault("ai.backend", "openai")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 1.0)
	v.SetDefault("ai.max_tokens", 1000)
	v.SetDefault("ai.timeout", 2*time.Minute)

	v.SetDefault("artifacts.dir", "chats")
	v.SetDefault("artifacts.ttl", 72*time.Hour)

	v.SetDefault("scheduler.tasks", map[string]TaskConfig{
		"artifact_sweep": {Enabled: true, Schedule: "0 0 4 * * *"},
	})

	v.SetDefault("telegram.messages.welcome",
		`Добавьте бота к себе в чат, сделайте его администратором и нажимайте "Анализ". `+
			`Важно!!! Бот анализирует новые сообщения после того как вы сделали его админом`)
	v.SetDefault("telegram.messages.starting", "Начинаю анализ сообщений...")
	v.SetDefault("telegram.messages.empty", "Сообщения для анализа не найдены.")
	v.SetDefault("telegram.messages.storage_error", "Произошла ошибка при получении сообщений из базы данных.")
	v.SetDefault("telegram.messages.analysis_failed", `Не удалось проанализировать сообщения из чата "%s".`)
	v.SetDefault("telegram.messages.complete", "Все файлы с анализом успешно отправлены.")
	v.SetDefault("telegram.messages.already_running", "Анализ уже выполняется, дождитесь его завершения.")
}
