package plan_service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"jandita-bot/internal/calendar"
	"jandita-bot/internal/models"
	apperrors "jandita-bot/pkg/errors"
	"jandita-bot/pkg/keylock"
)

// Table semanas en memoria indexadas por clave (lunes ISO).
// Rebuild reemplaza el mapa completo; las mutaciones se serializan por clave con Lock.
type Table struct {
	mu    sync.RWMutex
	weeks map[string]*models.WeekRecord
	built bool
	locks *keylock.Locker[string]
}

func NewTable() *Table {
	return &Table{
		weeks: make(map[string]*models.WeekRecord),
		locks: keylock.New[string](),
	}
}

// Rebuild genera las semanas de today y superpone los registros guardados que caen dentro.
// Los registros fuera de la ventana se ignoran.
func (t *Table) Rebuild(today time.Time, records []models.WeekRecord) {
	weeks := make(map[string]*models.WeekRecord)
	for _, w := range calendar.Generate(today) {
		weeks[w.Key()] = &models.WeekRecord{WeekStart: w.Start}
	}

	for _, r := range records {
		slot, ok := weeks[r.Key()]
		if !ok {
			continue
		}
		slot.Familia = copyValue(r.Familia)
		slot.Turno = copyValue(r.Turno)
	}

	t.mu.Lock()
	t.weeks = weeks
	t.built = true
	t.mu.Unlock()
}

// Built indica si la tabla se generó al menos una vez
func (t *Table) Built() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.built
}

// Lock serializa lectura-modificación-guardado de una semana
func (t *Table) Lock(key string) (unlock func()) {
	return t.locks.Lock(key)
}

func (t *Table) Get(key string) (models.WeekRecord, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	w, ok := t.weeks[key]
	if !ok {
		return models.WeekRecord{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
	}
	return snapshot(w), nil
}

// SetField value nil deja el campo sin asignar; devuelve la semana ya modificada
func (t *Table) SetField(key string, field models.Field, value *string) (models.WeekRecord, error) {
	if !field.Valid() {
		return models.WeekRecord{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidField, field)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.weeks[key]
	if !ok {
		return models.WeekRecord{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
	}

	switch field {
	case models.FieldFamilia:
		w.Familia = copyValue(value)
	case models.FieldTurno:
		w.Turno = copyValue(value)
	}
	return snapshot(w), nil
}

// Records copia de todas las semanas en orden cronológico
func (t *Table) Records() []models.WeekRecord {
	t.mu.RLock()
	records := make([]models.WeekRecord, 0, len(t.weeks))
	for _, w := range t.weeks {
		records = append(records, snapshot(w))
	}
	t.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].WeekStart.Before(records[j].WeekStart)
	})
	return records
}

func snapshot(w *models.WeekRecord) models.WeekRecord {
	return models.WeekRecord{
		WeekStart: w.WeekStart,
		Familia:   copyValue(w.Familia),
		Turno:     copyValue(w.Turno),
	}
}

func copyValue(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
