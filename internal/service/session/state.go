package session_service

import (
	"errors"
	"fmt"
	"strings"

	"jandita-bot/internal/models"
	apperrors "jandita-bot/pkg/errors"
)

// RemoveKeyword texto reservado que borra el campo
const RemoveKeyword = "/remove"

var ErrIllegalTransition = errors.New("transición de sesión no permitida")

type State int

const (
	StateIdle State = iota
	StateAwaitingInput
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EditSession estado de edición de un usuario
type EditSession struct {
	State   State               `json:"state"`
	Pending *models.PendingEdit `json:"pending,omitempty"`
}

// Begin pasa a AwaitingInput; una edición anterior se descarta
func (s *EditSession) Begin(edit models.PendingEdit) error {
	if !edit.Field.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidField, edit.Field)
	}
	if edit.WeekKey == "" {
		return fmt.Errorf("%w: edición sin semana", ErrIllegalTransition)
	}
	s.State = StateAwaitingInput
	s.Pending = &edit
	return nil
}

// Resolve vuelve a Idle devolviendo la edición pendiente
func (s *EditSession) Resolve() (models.PendingEdit, error) {
	if s.State != StateAwaitingInput || s.Pending == nil {
		return models.PendingEdit{}, fmt.Errorf("%w: %s -> idle", ErrIllegalTransition, s.State)
	}
	edit := *s.Pending
	s.State = StateIdle
	s.Pending = nil
	return edit, nil
}

// ParseInput texto recibido -> valor del campo; nil si es la palabra de borrado
func ParseInput(text string) *string {
	trimmed := strings.TrimSpace(text)
	if strings.ToLower(trimmed) == RemoveKeyword {
		return nil
	}
	return &trimmed
}
