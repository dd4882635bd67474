package repository

import (
	"context"

	"jandita-bot/internal/models"
)

type WeekRepository interface {
	// Todas las semanas guardadas, en cualquier orden
	LoadAll(ctx context.Context) ([]models.WeekRecord, error)
	// Crea o sobrescribe la fila; siempre escribe familia y turno juntos
	Upsert(ctx context.Context, record models.WeekRecord) error
}
