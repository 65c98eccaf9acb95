package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server    ServerConfig    // Настройки HTTP сервера
	Store     StoreConfig     // Выбор хранилища доменных данных
	Database  DatabaseConfig  // Настройки подключения к БД (для STORE_BACKEND=postgres)
	JWT       JWTConfig       // Настройки JWT авторизации
	Assistant AssistantConfig // Настройки доступа к генеративному API ассистента
	Locale    LocaleConfig    // Настройки локализации служебных сообщений
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port        string   `envconfig:"SERVER_PORT" default:"8080"`
	Host        string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// StoreConfig выбирает реализацию хранилища.
// Backend "memory" поднимает in-memory хранилище, заполненное стартовыми данными;
// "postgres" подключает PostgreSQL через pgx.
type StoreConfig struct {
	Backend string `envconfig:"STORE_BACKEND" default:"memory"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"team_hub"`
	Password string `envconfig:"DB_PASSWORD" default:"team_hub_pass"`
	Name     string `envconfig:"DB_NAME" default:"team_hub"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`
}

// AssistantConfig содержит настройки шлюза ассистента.
// Ключ берется исключительно из окружения и никогда из пользовательского ввода.
// KeySelection моделирует хосты с интерактивным выбором ключа: в режиме "env"
// возможности выбора нет, в режимах "selected"/"unselected" она есть и ключ
// соответственно выбран или еще нет.
type AssistantConfig struct {
	APIKey       string        `envconfig:"GEMINI_API_KEY" default:""`
	Model        string        `envconfig:"ASSISTANT_MODEL" default:"gemini-2.5-flash"`
	BaseURL      string        `envconfig:"ASSISTANT_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Timeout      time.Duration `envconfig:"ASSISTANT_TIMEOUT" default:"30s"`
	KeySelection string        `envconfig:"ASSISTANT_KEY_SELECTION" default:"env"`
	TeamName     string        `envconfig:"ASSISTANT_TEAM_NAME" default:"Dragons"`
}

// LocaleConfig содержит настройки локализации
type LocaleConfig struct {
	Default string `envconfig:"DEFAULT_LANGUAGE" default:"en"`
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Store.Backend != "memory" && cfg.Store.Backend != "postgres" {
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
	return &cfg, nil
}
