package week

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"jandita-bot/internal/calendar"
	"jandita-bot/internal/models"
	"jandita-bot/internal/repository"
)

type weekRow struct {
	WeekStart time.Time      `db:"week_start"`
	Familia   sql.NullString `db:"familia"`
	Turno     sql.NullString `db:"turno"`
}

type weekRepository struct {
	db  *sqlx.DB
	loc *time.Location
}

// NewWeekRepository loc es la zona del calendario en la que se devuelven las fechas
func NewWeekRepository(db *sqlx.DB, loc *time.Location) repository.WeekRepository {
	return &weekRepository{db: db, loc: loc}
}

func (r *weekRepository) LoadAll(ctx context.Context) ([]models.WeekRecord, error) {
	var rows []weekRow
	query := `SELECT week_start, familia, turno FROM semanas ORDER BY week_start`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	records := make([]models.WeekRecord, 0, len(rows))
	for _, row := range rows {
		// los drivers devuelven DATE en UTC; nos quedamos con año/mes/día
		start := time.Date(row.WeekStart.Year(), row.WeekStart.Month(), row.WeekStart.Day(), 0, 0, 0, 0, r.loc)
		records = append(records, models.WeekRecord{
			WeekStart: start,
			Familia:   fromNull(row.Familia),
			Turno:     fromNull(row.Turno),
		})
	}
	return records, nil
}

func (r *weekRepository) Upsert(ctx context.Context, record models.WeekRecord) error {
	query := r.db.Rebind(`
		INSERT INTO semanas (week_start, familia, turno, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (week_start)
		DO UPDATE SET
			familia = EXCLUDED.familia,
			turno = EXCLUDED.turno,
			updated_at = CURRENT_TIMESTAMP
	`)

	_, err := r.db.ExecContext(ctx, query,
		calendar.WeekKey(record.WeekStart),
		toNull(record.Familia),
		toNull(record.Turno),
	)
	return err
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
