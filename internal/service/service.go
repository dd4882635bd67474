package service

import (
	"context"
	"time"

	"jandita-bot/internal/models"
)

type PlanService interface {
	// Regenera la tabla a partir del calendario y la base de datos
	Refresh(ctx context.Context) ([]models.WeekRecord, error)
	// Tabla actual sin regenerar, en orden cronológico
	Records(ctx context.Context) ([]models.WeekRecord, error)
	GetWeek(ctx context.Context, key string) (models.WeekRecord, error)
	// Aplica el valor (nil = borrar) y guarda la semana completa
	ApplyEdit(ctx context.Context, edit models.PendingEdit, value *string) (models.WeekRecord, error)
	Today() time.Time
}

type SessionService interface {
	// Idle/AwaitingInput -> AwaitingInput; reemplaza la edición anterior
	Begin(ctx context.Context, userID int64, edit models.PendingEdit) error
	// AwaitingInput -> Idle; ok=false si no había edición pendiente
	Take(ctx context.Context, userID int64) (edit models.PendingEdit, ok bool, err error)
}

type ExportService interface {
	// Hoja de cálculo .xlsx con las semanas dadas
	Export(records []models.WeekRecord) ([]byte, error)
}
