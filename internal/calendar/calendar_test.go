package calendar

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_Scenario(t *testing.T) {
	today := time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC) // viernes

	weeks := Generate(today)
	if len(weeks) == 0 {
		t.Fatal("sin semanas")
	}
	if got := weeks[0].Key(); got != "2024-03-11" {
		t.Errorf("primera semana = %s, esperaba 2024-03-11", got)
	}
	if got := weeks[len(weeks)-1].Key(); got != "2024-06-24" {
		t.Errorf("última semana = %s, esperaba 2024-06-24", got)
	}
	if !weeks[0].End.Equal(day(2024, time.March, 17)) {
		t.Errorf("fin de la primera semana = %v", weeks[0].End)
	}
}

func TestGenerate_Properties(t *testing.T) {
	start := day(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		today := start.AddDate(0, 0, i)
		weeks := Generate(today)
		cutoff := Cutoff(today)

		if len(weeks) == 0 {
			t.Fatalf("%v: sin semanas", today)
		}
		if !weeks[0].Start.Equal(MondayOf(today)) {
			t.Fatalf("%v: primera semana %v", today, weeks[0].Start)
		}
		for j, w := range weeks {
			if w.Start.Weekday() != time.Monday {
				t.Fatalf("%v: %v no es lunes", today, w.Start)
			}
			if !w.End.Equal(w.Start.AddDate(0, 0, 6)) {
				t.Fatalf("%v: fin %v no es inicio+6", today, w.End)
			}
			if j > 0 && !w.Start.Equal(weeks[j-1].Start.AddDate(0, 0, 7)) {
				t.Fatalf("%v: semanas no contiguas en %d", today, j)
			}
		}
		last := weeks[len(weeks)-1].Start
		if last.After(cutoff) || !last.AddDate(0, 0, 7).After(cutoff) {
			t.Fatalf("%v: última semana %v no es el último lunes <= %v", today, last, cutoff)
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	today := day(2025, time.October, 2)
	a, b := Generate(today), Generate(today)
	if len(a) != len(b) {
		t.Fatalf("longitudes distintas %d %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Start.Equal(b[i].Start) {
			t.Fatalf("semana %d distinta", i)
		}
	}
}

func TestCutoff(t *testing.T) {
	tests := []struct {
		today time.Time
		want  time.Time
	}{
		{day(2024, time.March, 15), day(2024, time.June, 30)},
		{day(2024, time.June, 30), day(2024, time.June, 30)},
		{day(2024, time.July, 1), day(2025, time.June, 30)},
		{day(2024, time.December, 31), day(2025, time.June, 30)},
		{day(2025, time.January, 1), day(2025, time.June, 30)},
	}
	for _, tt := range tests {
		got := Cutoff(tt.today)
		if !got.Equal(tt.want) {
			t.Errorf("Cutoff(%v) = %v, esperaba %v", tt.today, got, tt.want)
		}
		if got.Before(tt.today) {
			t.Errorf("Cutoff(%v) anterior a hoy", tt.today)
		}
	}
}

func TestMondayOf_Sunday(t *testing.T) {
	got := MondayOf(day(2024, time.March, 17))
	if !got.Equal(day(2024, time.March, 11)) {
		t.Errorf("MondayOf(domingo) = %v", got)
	}
}

func TestWeekKey_RoundTrip(t *testing.T) {
	start := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.Local)
	parsed, err := ParseWeekKey(WeekKey(start), time.Local)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(start) {
		t.Errorf("round trip %v != %v", parsed, start)
	}
	if _, err := ParseWeekKey("11/03/2024", time.Local); err == nil {
		t.Error("esperaba error para formato inválido")
	}
}

func TestFormatShortDate(t *testing.T) {
	tests := map[time.Time]string{
		day(2024, time.January, 1):   "1 Ene",
		day(2024, time.March, 11):    "11 Mar",
		day(2024, time.August, 5):    "5 Ago",
		day(2024, time.December, 31): "31 Dic",
	}
	for in, want := range tests {
		if got := FormatShortDate(in); got != want {
			t.Errorf("FormatShortDate(%v) = %q, esperaba %q", in, got, want)
		}
	}
	if got := FormatRange(day(2024, time.March, 11), day(2024, time.March, 17)); got != "11 Mar – 17 Mar" {
		t.Errorf("FormatRange = %q", got)
	}
}
