package view

import (
	"fmt"
	"strings"
	"time"

	"jandita-bot/internal/calendar"
)

// Kind tipo de acción en el callback_data de los botones
type Kind string

const (
	KindWeek     Kind = "week"
	KindFamilia  Kind = "familia"
	KindTurno    Kind = "turno"
	KindNoop     Kind = "noop"
	KindShowAll  Kind = "show_all"
	KindShowNear Kind = "show_3m"
)

// Action "<kind>:<weekKey>" para celdas de semana, token simple para controles
type Action struct {
	Kind    Kind
	WeekKey string
}

func (a Action) String() string {
	if a.WeekKey == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + a.WeekKey
}

func WeekAction(kind Kind, key string) string {
	return Action{Kind: kind, WeekKey: key}.String()
}

// ParseAction valida el tipo y, si lleva semana, que la clave sea una fecha ISO
func ParseAction(data string) (Action, error) {
	kind, key, hasKey := strings.Cut(data, ":")

	switch Kind(kind) {
	case KindWeek, KindFamilia, KindTurno:
		if !hasKey {
			return Action{}, fmt.Errorf("acción %q sin semana", data)
		}
		if _, err := calendar.ParseWeekKey(key, time.UTC); err != nil {
			return Action{}, err
		}
		return Action{Kind: Kind(kind), WeekKey: key}, nil
	case KindNoop, KindShowAll, KindShowNear:
		if hasKey {
			return Action{}, fmt.Errorf("acción %q no lleva semana", data)
		}
		return Action{Kind: Kind(kind)}, nil
	}
	return Action{}, fmt.Errorf("acción desconocida %q", data)
}
