package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "jandita-bot/pkg/errors"
)

// DatabaseConfig configuración de la base de datos
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres | sqlite3
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectAttempts int           `mapstructure:"connect_attempts"`
	ConnectBackoff  time.Duration `mapstructure:"connect_backoff"`
}

// Load carga la configuración: variables de entorno > config.yaml > valores por defecto.
// path vacío busca config.yaml en ./config y en el directorio actual.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("environment", "development")

	v.SetDefault("bot.token", "")
	v.SetDefault("bot.debug", false)
	v.SetDefault("bot.timeout", 60)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 5)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.connect_attempts", 5)
	v.SetDefault("db.connect_backoff", "1s")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("http.enabled", false)
	v.SetDefault("http.addr", ":8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// BOT_TOKEN, DB_DSN, REDIS_ADDR, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("leer archivo de configuración: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decodificar configuración: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa los parámetros obligatorios
func (c *Config) Validate() error {
	var problems []string

	if c.Bot.Token == "" {
		problems = append(problems, "BOT_TOKEN es obligatorio")
	}

	if c.Database.DSN == "" {
		problems = append(problems, "DB_DSN es obligatorio")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER %q no soportado", c.Database.Driver))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrConfiguration, strings.Join(problems, ", "))
	}

	return nil
}
