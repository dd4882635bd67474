package session_service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"jandita-bot/internal/models"
	"jandita-bot/internal/service"
	"jandita-bot/pkg/keylock"
)

type sessionService struct {
	store  Store
	locks  *keylock.Locker[int64]
	logger *zap.Logger
}

func NewSessionService(store Store, logger *zap.Logger) service.SessionService {
	return &sessionService{
		store:  store,
		locks:  keylock.New[int64](),
		logger: logger,
	}
}

func (s *sessionService) Begin(ctx context.Context, userID int64, edit models.PendingEdit) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	if session.State == StateAwaitingInput && session.Pending != nil {
		s.logger.Debug("edición pendiente reemplazada",
			zap.Int64("user_id", userID),
			zap.String("week", session.Pending.WeekKey),
		)
	}

	if err := session.Begin(edit); err != nil {
		return err
	}
	return s.store.Save(ctx, userID, session)
}

func (s *sessionService) Take(ctx context.Context, userID int64) (models.PendingEdit, bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return models.PendingEdit{}, false, err
	}

	edit, err := session.Resolve()
	if errors.Is(err, ErrIllegalTransition) {
		// Idle: el texto no pertenece a ninguna edición
		return models.PendingEdit{}, false, nil
	}
	if err != nil {
		return models.PendingEdit{}, false, err
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return models.PendingEdit{}, false, err
	}
	return edit, true, nil
}
