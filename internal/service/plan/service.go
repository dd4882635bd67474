package plan_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jandita-bot/internal/calendar"
	"jandita-bot/internal/models"
	"jandita-bot/internal/repository"
	"jandita-bot/internal/service"
	apperrors "jandita-bot/pkg/errors"
)

type planService struct {
	repo  repository.WeekRepository
	table *Table
	// ApplyEdit toma la lectura y Refresh la escritura
	editMu sync.RWMutex

	now    func() time.Time
	logger *zap.Logger
}

// NewPlanService now permite fijar "hoy" en pruebas; nil usa time.Now
func NewPlanService(repo repository.WeekRepository, now func() time.Time, logger *zap.Logger) service.PlanService {
	if now == nil {
		now = time.Now
	}
	return &planService{
		repo:   repo,
		table:  NewTable(),
		now:    now,
		logger: logger,
	}
}

func (s *planService) Today() time.Time {
	return calendar.Date(s.now())
}

func (s *planService) Refresh(ctx context.Context) ([]models.WeekRecord, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cargar semanas: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.table.Rebuild(s.Today(), records)
	return s.table.Records(), nil
}

func (s *planService) Records(ctx context.Context) ([]models.WeekRecord, error) {
	if err := s.ensureBuilt(ctx); err != nil {
		return nil, err
	}
	return s.table.Records(), nil
}

func (s *planService) GetWeek(ctx context.Context, key string) (models.WeekRecord, error) {
	if err := s.ensureBuilt(ctx); err != nil {
		return models.WeekRecord{}, err
	}
	return s.table.Get(key)
}

// ApplyEdit si falla el guardado el valor queda en memoria y se devuelve ErrStoreUnavailable
func (s *planService) ApplyEdit(ctx context.Context, edit models.PendingEdit, value *string) (models.WeekRecord, error) {
	if !edit.Field.Valid() {
		return models.WeekRecord{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidField, edit.Field)
	}
	if err := s.ensureBuilt(ctx); err != nil {
		return models.WeekRecord{}, err
	}

	s.editMu.RLock()
	defer s.editMu.RUnlock()

	unlock := s.table.Lock(edit.WeekKey)
	defer unlock()

	record, err := s.table.SetField(edit.WeekKey, edit.Field, value)
	if err != nil {
		return models.WeekRecord{}, err
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Error("❌ Error guardando semana",
			zap.String("week", edit.WeekKey),
			zap.String("field", string(edit.Field)),
			zap.Error(err),
		)
		return record, fmt.Errorf("%w: guardar semana %s: %v", apperrors.ErrStoreUnavailable, edit.WeekKey, err)
	}

	s.logger.Info("✅ Semana actualizada",
		zap.String("week", edit.WeekKey),
		zap.String("field", string(edit.Field)),
		zap.Bool("cleared", value == nil),
	)
	return record, nil
}

// ensureBuilt tras un reinicio la tabla está vacía hasta el primer /plan
func (s *planService) ensureBuilt(ctx context.Context) error {
	if s.table.Built() {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}
