package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"jandita-bot/internal/bot"
	"jandita-bot/internal/models/config"
	"jandita-bot/internal/repository"
	"jandita-bot/internal/repository/week"
	"jandita-bot/internal/service"
	export_service "jandita-bot/internal/service/export"
	plan_service "jandita-bot/internal/service/plan"
	session_service "jandita-bot/internal/service/session"
	"jandita-bot/internal/web"
	"jandita-bot/pkg/database"
	"jandita-bot/pkg/logger"
	"jandita-bot/pkg/redis"
)

func main() {
	app := fx.New(
		fx.Provide(
			func() (*config.Config, error) { return config.Load(os.Getenv("CONFIG_FILE")) },
			func(c *config.Config) *config.BotConfig { return &c.Bot },
			func(c *config.Config) *config.DatabaseConfig { return &c.Database },
			func(c *config.Config) *config.RedisConfig { return &c.Redis },
			func(c *config.Config) *config.HTTPConfig { return &c.HTTP },
			func(c *config.Config) *config.LogConfig { return &c.Log },
			logger.NewLogger,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),

		// Infraestructura
		fx.Provide(
			newDatabase,
			newSessionStore,
		),

		// Repositorios y servicios
		fx.Provide(
			func(db *sqlx.DB) repository.WeekRepository {
				return week.NewWeekRepository(db, time.Local)
			},
			func(repo repository.WeekRepository, l *zap.Logger) service.PlanService {
				return plan_service.NewPlanService(repo, nil, l)
			},
			session_service.NewSessionService,
			export_service.NewExportService,
		),

		// Transporte
		fx.Provide(
			bot.NewBot,
			web.NewHandler,
		),
		fx.Invoke(runBot, runHTTP),
	)

	if err := app.Err(); err != nil {
		log.Printf("❌ Error de arranque: %v", err)
		os.Exit(1)
	}

	app.Run()
}

func newDatabase(lc fx.Lifecycle, cfg *config.DatabaseConfig, l *zap.Logger) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

// newSessionStore Redis si está configurado, si no en memoria
func newSessionStore(lc fx.Lifecycle, cfg *config.RedisConfig, l *zap.Logger) (session_service.Store, error) {
	if cfg.Addr == "" {
		l.Info("💾 Sesiones en memoria")
		return session_service.NewMemoryStore(), nil
	}

	client, err := redis.NewClient(cfg, l)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return session_service.NewRedisStore(client), nil
}

func runBot(lc fx.Lifecycle, shutdowner fx.Shutdowner, b *bot.Bot, l *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := b.Start(ctx); err != nil {
					l.Error("❌ Error del bot", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			l.Info("🚀 Bot en marcha")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			l.Info("👋 Bot detenido")
			return nil
		},
	})
}

func runHTTP(lc fx.Lifecycle, cfg *config.HTTPConfig, appCfg *config.Config, h *web.Handler, l *zap.Logger) {
	if !cfg.Enabled {
		return
	}

	if appCfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.NewRouter(h, l),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("❌ Error del servidor HTTP", zap.Error(err))
				}
			}()
			l.Info("🌐 API HTTP escuchando", zap.String("addr", cfg.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
