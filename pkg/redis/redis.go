package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jandita-bot/internal/models/config"
)

// Client envoltorio de Redis; guarda las sesiones de edición para que sobrevivan a un reinicio
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient conecta y hace Ping con timeout
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	logger.Info("🔌 Conectado a Redis", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Sesiones de edición ──

const sessionPrefix = "session:"

func sessionKey(userID int64) string {
	return sessionPrefix + strconv.FormatInt(userID, 10)
}

// SetSession sin TTL: la edición pendiente vive hasta que se consume o se reemplaza
func (c *Client) SetSession(ctx context.Context, userID int64, data []byte) error {
	return c.rdb.Set(ctx, sessionKey(userID), data, 0).Err()
}

// GetSession nil, nil si no existe
func (c *Client) GetSession(ctx context.Context, userID int64) ([]byte, error) {
	data, err := c.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return data, err
}

func (c *Client) DeleteSession(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, sessionKey(userID)).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
