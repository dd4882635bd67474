// Package view proyecta la tabla de semanas en una cuadrícula de botones.
package view

import (
	"sort"
	"time"

	"jandita-bot/internal/calendar"
	"jandita-bot/internal/models"
)

type Mode int

const (
	ModeWindowed Mode = iota // próximas 12 semanas
	ModeFull                 // hasta el corte de junio
)

const (
	Placeholder = "—"
	WindowDays  = 12 * 7
)

const (
	TitleWindowed = "📅 Planificación (próximos 3 meses):"
	TitleFull     = "📅 Planificación completa (hasta junio):"
	TitleUpdated  = "✅ Planificación actualizada:"
)

type Cell struct {
	Label  string
	Action string
}

type Grid struct {
	Mode Mode
	Rows [][]Cell
}

func (m Mode) String() string {
	if m == ModeFull {
		return "full"
	}
	return "windowed"
}

func (m Mode) Title() string {
	if m == ModeFull {
		return TitleFull
	}
	return TitleWindowed
}

// Sorted copia ordenada por inicio de semana
func Sorted(records []models.WeekRecord) []models.WeekRecord {
	sorted := make([]models.WeekRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeekStart.Before(sorted[j].WeekStart)
	})
	return sorted
}

// Filter semanas visibles en el modo dado, en orden cronológico
func Filter(records []models.WeekRecord, mode Mode, today time.Time) []models.WeekRecord {
	sorted := Sorted(records)
	if mode == ModeFull {
		return sorted
	}

	limit := calendar.Date(today).AddDate(0, 0, WindowDays)
	visible := sorted[:0]
	for _, r := range sorted {
		if r.WeekStart.After(limit) {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

func Render(records []models.WeekRecord, mode Mode, today time.Time) Grid {
	rows := [][]Cell{{
		{Label: "📅 Semana", Action: string(KindNoop)},
		{Label: "👨‍👩‍👧 Familia", Action: string(KindNoop)},
		{Label: "⏰ Turno", Action: string(KindNoop)},
	}}

	for _, r := range Filter(records, mode, today) {
		key := r.Key()
		rows = append(rows, []Cell{
			{Label: WeekLabel(r), Action: WeekAction(KindWeek, key)},
			{Label: ValueOrPlaceholder(r.Familia), Action: WeekAction(KindFamilia, key)},
			{Label: ValueOrPlaceholder(r.Turno), Action: WeekAction(KindTurno, key)},
		})
	}

	if mode == ModeFull {
		rows = append(rows, []Cell{{Label: "📅 Próximos 3 meses", Action: string(KindShowNear)}})
	} else {
		rows = append(rows, []Cell{{Label: "📅 Mostrar todo", Action: string(KindShowAll)}})
	}

	return Grid{Mode: mode, Rows: rows}
}

func WeekLabel(r models.WeekRecord) string {
	return calendar.FormatRange(r.WeekStart, r.WeekEnd())
}

// ValueOrPlaceholder nunca devuelve cadena vacía
func ValueOrPlaceholder(v *string) string {
	if v == nil || *v == "" {
		return Placeholder
	}
	return *v
}

// Detail texto de "ver semana"
func Detail(r models.WeekRecord) string {
	return "📅 " + WeekLabel(r) + "\n" +
		"Familia: " + ValueOrPlaceholder(r.Familia) + "\n" +
		"Turno: " + ValueOrPlaceholder(r.Turno)
}
