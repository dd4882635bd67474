package plan_service

import (
	"context"
	"sync"

	"jandita-bot/internal/models"
)

// ── Mock WeekRepository ──

type mockWeekRepo struct {
	mu        sync.Mutex
	records   map[string]models.WeekRecord
	upserts   []models.WeekRecord
	loadErr   error
	upsertErr error

	// si no son nil, Upsert avisa por upsertStarted y espera a releaseUpsert
	upsertStarted chan struct{}
	releaseUpsert chan struct{}
}

func newMockWeekRepo(records ...models.WeekRecord) *mockWeekRepo {
	m := &mockWeekRepo{records: make(map[string]models.WeekRecord)}
	for _, r := range records {
		m.records[r.Key()] = r
	}
	return m
}

func (m *mockWeekRepo) LoadAll(_ context.Context) ([]models.WeekRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	var result []models.WeekRecord
	for _, r := range m.records {
		result = append(result, r)
	}
	return result, nil
}

func (m *mockWeekRepo) Upsert(_ context.Context, record models.WeekRecord) error {
	if m.upsertStarted != nil {
		m.upsertStarted <- struct{}{}
		<-m.releaseUpsert
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts = append(m.upserts, record)
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.records[record.Key()] = record
	return nil
}

func (m *mockWeekRepo) lastUpsert() (models.WeekRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.upserts) == 0 {
		return models.WeekRecord{}, false
	}
	return m.upserts[len(m.upserts)-1], true
}
