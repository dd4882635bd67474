package models

import (
	"time"

	"jandita-bot/internal/calendar"
)

// Field campo editable de una semana
type Field string

const (
	FieldFamilia Field = "familia"
	FieldTurno   Field = "turno"
)

func (f Field) Valid() bool {
	return f == FieldFamilia || f == FieldTurno
}

// WeekRecord asignación de una semana. La identidad es WeekStart; el fin se deriva.
type WeekRecord struct {
	WeekStart time.Time `json:"week_start"`
	Familia   *string   `json:"familia"`
	Turno     *string   `json:"turno"`
}

func (r WeekRecord) Key() string {
	return calendar.WeekKey(r.WeekStart)
}

func (r WeekRecord) WeekEnd() time.Time {
	return r.WeekStart.AddDate(0, 0, 6)
}

// Value valor actual del campo (nil = sin asignar)
func (r WeekRecord) Value(f Field) *string {
	switch f {
	case FieldFamilia:
		return r.Familia
	case FieldTurno:
		return r.Turno
	}
	return nil
}

// PendingEdit edición pendiente: qué semana y qué campo espera texto
type PendingEdit struct {
	WeekKey string `json:"week_key"`
	Field   Field  `json:"field"`
}
