package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jandita-bot/internal/models"
	session_service "jandita-bot/internal/service/session"
	"jandita-bot/internal/view"
	apperrors "jandita-bot/pkg/errors"
)

const (
	textWeekGone    = "⚠️ Esta semana ya no está disponible. Usa /plan para ver la planificación actual."
	textLoadFailed  = "No se pudo cargar la planificación. Inténtalo más tarde."
	textSaveFailed  = "No se pudo guardar el cambio. Vuelve a editar la semana para reintentarlo."
	textExportEmpty = "No se pudo generar el archivo."

	errorPrefix = "❌ "
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := b.logger.With(zap.String("request_id", uuid.NewString()))

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, log, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, log, update.Message)
	}
}

// handleMessage comandos primero; el resto es texto para una edición pendiente
func (b *Bot) handleMessage(ctx context.Context, log *zap.Logger, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := int64(message.From.ID)
	chatID := message.Chat.ID
	log = log.With(zap.Int64("user_id", userID))

	text := message.Text
	if message.IsCommand() {
		switch message.Command() {
		case "plan", "start":
			log.Info("📅 /plan")
			b.showPlan(ctx, log, chatID)
			return
		case "export":
			log.Info("📄 /export")
			b.sendExport(ctx, log, chatID)
			return
		}
		// /remove y otros comandos llegan como texto de la edición, sin el sufijo @bot de los grupos
		text = commandText(message)
	}

	// stickers, fotos, ubicaciones: no consumen la edición pendiente
	if text == "" {
		return
	}

	b.handleText(ctx, log, chatID, userID, text)
}

func commandText(message *tgbotapi.Message) string {
	text := "/" + message.Command()
	if args := message.CommandArguments(); args != "" {
		text += " " + args
	}
	return text
}

func (b *Bot) handleText(ctx context.Context, log *zap.Logger, chatID, userID int64, text string) {
	edit, ok, err := b.SessionService.Take(ctx, userID)
	if err != nil {
		log.Error("❌ Error leyendo la sesión", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	log = log.With(zap.String("week", edit.WeekKey), zap.String("field", string(edit.Field)))

	_, err = b.PlanService.ApplyEdit(ctx, edit, session_service.ParseInput(text))
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn("semana fuera de la tabla", zap.Error(err))
		b.sendMessage(chatID, textWeekGone)
		return
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		b.sendError(chatID, textSaveFailed)
		return
	default:
		log.Error("❌ Edición descartada", zap.Error(err))
		return
	}

	records, err := b.PlanService.Records(ctx)
	if err != nil {
		log.Error("❌ Error leyendo la tabla", zap.Error(err))
		return
	}

	grid := view.Render(records, view.ModeWindowed, b.PlanService.Today())
	msg := tgbotapi.NewMessage(chatID, view.TitleUpdated)
	msg.ReplyMarkup = createPlanKeyboard(grid)
	b.send(log, msg)
}

func (b *Bot) handleCallback(ctx context.Context, log *zap.Logger, query *tgbotapi.CallbackQuery) {
	if _, err := b.sender.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Warn("no se pudo responder al callback", zap.Error(err))
	}
	if query.From == nil || query.Message == nil {
		return
	}

	userID := int64(query.From.ID)
	chatID := query.Message.Chat.ID
	log = log.With(zap.Int64("user_id", userID), zap.String("action", query.Data))

	action, err := view.ParseAction(query.Data)
	if err != nil {
		log.Warn("callback desconocido", zap.Error(err))
		return
	}

	switch action.Kind {
	case view.KindNoop:
	case view.KindWeek:
		b.showWeek(ctx, log, chatID, action.WeekKey)
	case view.KindFamilia, view.KindTurno:
		b.beginEdit(ctx, log, chatID, userID, models.PendingEdit{WeekKey: action.WeekKey, Field: models.Field(action.Kind)})
	case view.KindShowAll:
		b.switchView(ctx, log, query.Message, view.ModeFull)
	case view.KindShowNear:
		b.switchView(ctx, log, query.Message, view.ModeWindowed)
	}
}

// showPlan regenera la tabla y la envía como mensaje nuevo
func (b *Bot) showPlan(ctx context.Context, log *zap.Logger, chatID int64) {
	records, err := b.PlanService.Refresh(ctx)
	if err != nil {
		log.Error("❌ Error cargando la planificación", zap.Error(err))
		b.sendError(chatID, textLoadFailed)
		return
	}

	grid := view.Render(records, view.ModeWindowed, b.PlanService.Today())
	msg := tgbotapi.NewMessage(chatID, view.ModeWindowed.Title())
	msg.ReplyMarkup = createPlanKeyboard(grid)
	b.send(log, msg)
}

// switchView edita el mensaje del botón en lugar de mandar uno nuevo
func (b *Bot) switchView(ctx context.Context, log *zap.Logger, message *tgbotapi.Message, mode view.Mode) {
	records, err := b.PlanService.Records(ctx)
	if err != nil {
		log.Error("❌ Error leyendo la tabla", zap.Error(err))
		b.sendError(message.Chat.ID, textLoadFailed)
		return
	}

	grid := view.Render(records, mode, b.PlanService.Today())
	keyboard := createPlanKeyboard(grid)
	edit := tgbotapi.NewEditMessageText(message.Chat.ID, message.MessageID, mode.Title())
	edit.ReplyMarkup = &keyboard
	b.send(log, edit)
}

func (b *Bot) showWeek(ctx context.Context, log *zap.Logger, chatID int64, key string) {
	week, err := b.PlanService.GetWeek(ctx, key)
	if err != nil {
		b.reportLookupError(log, chatID, err)
		return
	}
	b.sendMessage(chatID, view.Detail(week))
}

func (b *Bot) beginEdit(ctx context.Context, log *zap.Logger, chatID, userID int64, edit models.PendingEdit) {
	week, err := b.PlanService.GetWeek(ctx, edit.WeekKey)
	if err != nil {
		b.reportLookupError(log, chatID, err)
		return
	}

	if err := b.SessionService.Begin(ctx, userID, edit); err != nil {
		log.Error("❌ No se pudo iniciar la edición", zap.Error(err))
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("Escribe el %s para la semana %s (o %s para borrar).",
		edit.Field, view.WeekLabel(week), session_service.RemoveKeyword))
}

func (b *Bot) sendExport(ctx context.Context, log *zap.Logger, chatID int64) {
	records, err := b.PlanService.Refresh(ctx)
	if err != nil {
		log.Error("❌ Error cargando la planificación", zap.Error(err))
		b.sendError(chatID, textLoadFailed)
		return
	}

	data, err := b.ExportService.Export(records)
	if err != nil {
		log.Error("❌ Error generando xlsx", zap.Error(err))
		b.sendError(chatID, textExportEmpty)
		return
	}

	doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{Name: "planificacion.xlsx", Bytes: data})
	doc.Caption = view.TitleFull
	b.send(log, doc)
}

func (b *Bot) reportLookupError(log *zap.Logger, chatID int64, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Info("botón de una semana que ya no está en la tabla", zap.Error(err))
		b.sendMessage(chatID, textWeekGone)
		return
	}
	log.Error("❌ Error leyendo la semana", zap.Error(err))
	b.sendError(chatID, textLoadFailed)
}

func (b *Bot) send(log *zap.Logger, c tgbotapi.Chattable) {
	if _, err := b.sender.Send(c); err != nil {
		log.Error("❌ Error enviando mensaje", zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.send(b.logger, msg)
}

// sendError mismo canal que sendMessage con el prefijo de error
func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, errorPrefix+text)
}
