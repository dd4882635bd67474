// Package calendar genera las semanas (lunes a domingo) desde la semana actual
// hasta el 30 de junio del curso en marcha.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout formato ISO-8601 de la clave de semana
const KeyLayout = "2006-01-02"

// Week intervalo lunes–domingo
type Week struct {
	Start time.Time
	End   time.Time
}

// Key clave de la semana, p.ej. "2024-03-11"
func (w Week) Key() string {
	return WeekKey(w.Start)
}

// Date medianoche local del día de t
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayOf lunes de la semana que contiene t
func MondayOf(t time.Time) time.Time {
	d := Date(t)
	offset := (int(d.Weekday()) + 6) % 7 // lunes = 0
	return d.AddDate(0, 0, -offset)
}

// Cutoff 30 de junio de este año si estamos en enero–junio, si no el del año siguiente
func Cutoff(today time.Time) time.Time {
	year := today.Year()
	if today.Month() > time.June {
		year++
	}
	return time.Date(year, time.June, 30, 0, 0, 0, 0, today.Location())
}

// Generate semanas consecutivas desde el lunes de today hasta el último lunes <= Cutoff(today).
// Siempre devuelve al menos la semana actual.
func Generate(today time.Time) []Week {
	start := MondayOf(today)
	cutoff := Cutoff(today)

	weeks := []Week{{Start: start, End: start.AddDate(0, 0, 6)}}
	for next := start.AddDate(0, 0, 7); !next.After(cutoff); next = next.AddDate(0, 0, 7) {
		weeks = append(weeks, Week{Start: next, End: next.AddDate(0, 0, 6)})
	}
	return weeks
}

// WeekKey formatea el lunes como clave
func WeekKey(start time.Time) string {
	return start.Format(KeyLayout)
}

// ParseWeekKey inverso de WeekKey en la zona loc
func ParseWeekKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("clave de semana %q: %w", key, err)
	}
	return t, nil
}

var monthAbbrev = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// FormatShortDate "11 Mar"
func FormatShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthAbbrev[t.Month()-1])
}

// FormatRange "11 Mar – 17 Mar"
func FormatRange(start, end time.Time) string {
	return FormatShortDate(start) + " – " + FormatShortDate(end)
}
