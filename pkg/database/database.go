package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"jandita-bot/internal/models/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS semanas (
	week_start DATE PRIMARY KEY,
	familia    TEXT,
	turno      TEXT,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Open abre el pool de conexiones, reintenta el primer ping con backoff exponencial
// y crea la tabla si no existe.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := connect(ctx, db, cfg, logger); err != nil {
		db.Close()
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("🗄️  Conectado a la base de datos", zap.String("driver", cfg.Driver))
	return db, nil
}

func connect(ctx context.Context, db *sqlx.DB, cfg *config.DatabaseConfig, logger *zap.Logger) error {
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := cfg.ConnectBackoff

	var err error
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts {
			break
		}

		logger.Warn("⏳ Base de datos no disponible, reintentando",
			zap.Int("intento", i),
			zap.Duration("espera", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("ping a la base de datos: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return fmt.Errorf("ping a la base de datos tras %d intentos: %w", attempts, err)
}

// Migrate crea el esquema; es idempotente
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("crear tabla semanas: %w", err)
	}
	return nil
}
