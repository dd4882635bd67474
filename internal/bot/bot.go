package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"jandita-bot/internal/models/config"
	"jandita-bot/internal/service"
)

// Sender la parte de tgbotapi.BotAPI que usan los handlers
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
}

type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	timeout int

	PlanService    service.PlanService
	SessionService service.SessionService
	ExportService  service.ExportService

	logger *zap.Logger
}

func NewBot(
	cfg *config.BotConfig,
	planService service.PlanService,
	sessionService service.SessionService,
	exportService service.ExportService,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("crear cliente de Telegram: %w", err)
	}

	api.Debug = cfg.Debug

	logger.Info("🤖 Bot inicializado",
		zap.String("username", api.Self.UserName),
		zap.Bool("debug", cfg.Debug),
	)

	b := newBot(api, planService, sessionService, exportService, logger)
	b.api = api
	b.timeout = cfg.Timeout
	return b, nil
}

func newBot(
	sender Sender,
	planService service.PlanService,
	sessionService service.SessionService,
	exportService service.ExportService,
	logger *zap.Logger,
) *Bot {
	return &Bot{
		sender:         sender,
		timeout:        60,
		PlanService:    planService,
		SessionService: sessionService,
		ExportService:  exportService,
		logger:         logger,
	}
}

// Start long polling hasta que ctx se cancele; cada update en su goroutine
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	b.logger.Info("📡 Escuchando actualizaciones", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}
