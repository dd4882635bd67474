package plan_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"jandita-bot/internal/models"
	apperrors "jandita-bot/pkg/errors"
)

func setupTestPlanService(records ...models.WeekRecord) (*planService, *mockWeekRepo) {
	repo := newMockWeekRepo(records...)
	svc := NewPlanService(repo, func() time.Time { return testToday.Add(15 * time.Hour) }, zap.NewNop())
	return svc.(*planService), repo
}

func TestPlanService_Today(t *testing.T) {
	svc, _ := setupTestPlanService()
	if !svc.Today().Equal(testToday) {
		t.Errorf("Today = %v, esperaba medianoche %v", svc.Today(), testToday)
	}
}

func TestPlanService_ApplyEdit_SetsAndPersists(t *testing.T) {
	svc, repo := setupTestPlanService(models.WeekRecord{WeekStart: monday(2024, time.March, 11), Turno: strPtr("mañana")})
	ctx := context.Background()
	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	edit := models.PendingEdit{WeekKey: "2024-03-11", Field: models.FieldFamilia}
	record, err := svc.ApplyEdit(ctx, edit, strPtr("Pérez"))
	if err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if *record.Familia != "Pérez" {
		t.Errorf("familia = %q", *record.Familia)
	}

	saved, ok := repo.lastUpsert()
	if !ok {
		t.Fatal("no se llamó a Upsert")
	}
	if saved.Key() != "2024-03-11" || saved.Familia == nil || *saved.Familia != "Pérez" {
		t.Errorf("upsert inesperado: %+v", saved)
	}
	if saved.Turno == nil || *saved.Turno != "mañana" {
		t.Errorf("el upsert debe llevar también el turno existente: %+v", saved.Turno)
	}
}

func TestPlanService_ApplyEdit_Clear(t *testing.T) {
	svc, repo := setupTestPlanService(models.WeekRecord{WeekStart: monday(2024, time.March, 11), Familia: strPtr("Pérez")})
	ctx := context.Background()

	if _, err := svc.ApplyEdit(ctx, models.PendingEdit{WeekKey: "2024-03-11", Field: models.FieldFamilia}, nil); err != nil {
		t.Fatal(err)
	}
	saved, _ := repo.lastUpsert()
	if saved.Familia != nil {
		t.Errorf("el upsert debería llevar familia nil, lleva %q", *saved.Familia)
	}
}

func TestPlanService_ApplyEdit_StoreFailureKeepsValue(t *testing.T) {
	svc, repo := setupTestPlanService()
	repo.upsertErr = errors.New("connection reset")
	ctx := context.Background()

	_, err := svc.ApplyEdit(ctx, models.PendingEdit{WeekKey: "2024-03-18", Field: models.FieldTurno}, strPtr("tarde"))
	if !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Fatalf("esperaba ErrStoreUnavailable, obtuve %v", err)
	}

	w, err := svc.GetWeek(ctx, "2024-03-18")
	if err != nil {
		t.Fatal(err)
	}
	if w.Turno == nil || *w.Turno != "tarde" {
		t.Error("el valor debe quedar en memoria aunque falle el guardado")
	}
	if len(repo.upserts) != 1 {
		t.Errorf("sin reintentos: esperaba 1 upsert, hubo %d", len(repo.upserts))
	}
}

func TestPlanService_ApplyEdit_NotFound(t *testing.T) {
	svc, repo := setupTestPlanService()

	_, err := svc.ApplyEdit(context.Background(), models.PendingEdit{WeekKey: "2023-09-04", Field: models.FieldTurno}, strPtr("x"))
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("esperaba ErrNotFound, obtuve %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Error("no debe guardar semanas inexistentes")
	}
}

func TestPlanService_ApplyEdit_InvalidField(t *testing.T) {
	svc, _ := setupTestPlanService()

	_, err := svc.ApplyEdit(context.Background(), models.PendingEdit{WeekKey: "2024-03-11", Field: "week"}, strPtr("x"))
	if !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("esperaba ErrInvalidField, obtuve %v", err)
	}
}

func TestPlanService_RefreshStoreFailure(t *testing.T) {
	svc, repo := setupTestPlanService()
	repo.loadErr = errors.New("dial tcp: refused")

	if _, err := svc.Refresh(context.Background()); !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Fatalf("esperaba ErrStoreUnavailable, obtuve %v", err)
	}
	if svc.table.Built() {
		t.Error("la tabla no debe marcarse como generada si falla la carga")
	}
}

func TestPlanService_RecordsBuildsLazily(t *testing.T) {
	svc, _ := setupTestPlanService(models.WeekRecord{WeekStart: monday(2024, time.April, 8), Familia: strPtr("García")})

	records, err := svc.Records(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) == 0 || records[0].Key() != "2024-03-11" {
		t.Fatalf("tabla inesperada: %d semanas", len(records))
	}
}

func TestPlanService_ConcurrentDisjointEdits(t *testing.T) {
	svc, repo := setupTestPlanService()
	ctx := context.Background()
	records, _ := svc.Refresh(ctx)

	var wg sync.WaitGroup
	for i, r := range records {
		wg.Add(2)
		go func(key string, i int) {
			defer wg.Done()
			svc.ApplyEdit(ctx, models.PendingEdit{WeekKey: key, Field: models.FieldFamilia}, strPtr(fmt.Sprintf("f%d", i)))
		}(r.Key(), i)
		go func(key string, i int) {
			defer wg.Done()
			svc.ApplyEdit(ctx, models.PendingEdit{WeekKey: key, Field: models.FieldTurno}, strPtr(fmt.Sprintf("t%d", i)))
		}(r.Key(), i)
	}
	wg.Wait()

	for i, r := range records {
		w, _ := svc.GetWeek(ctx, r.Key())
		if w.Familia == nil || *w.Familia != fmt.Sprintf("f%d", i) || w.Turno == nil || *w.Turno != fmt.Sprintf("t%d", i) {
			t.Errorf("%s: actualización perdida %+v", r.Key(), w)
		}
		saved := repo.records[r.Key()]
		if saved.Familia == nil || saved.Turno == nil {
			t.Errorf("%s: el último upsert debe llevar ambos campos", r.Key())
		}
	}
}

func TestPlanService_RefreshWaitsForEdit(t *testing.T) {
	svc, repo := setupTestPlanService()
	ctx := context.Background()
	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	repo.upsertStarted = make(chan struct{})
	repo.releaseUpsert = make(chan struct{})

	editDone := make(chan error, 1)
	go func() {
		_, err := svc.ApplyEdit(ctx, models.PendingEdit{WeekKey: "2024-03-11", Field: models.FieldFamilia}, strPtr("Pérez"))
		editDone <- err
	}()
	<-repo.upsertStarted

	refreshDone := make(chan error, 1)
	go func() {
		_, err := svc.Refresh(ctx)
		refreshDone <- err
	}()

	select {
	case <-refreshDone:
		t.Fatal("Refresh terminó con una edición a medio guardar")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.releaseUpsert)
	if err := <-editDone; err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if err := <-refreshDone; err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	w, err := svc.GetWeek(ctx, "2024-03-11")
	if err != nil {
		t.Fatal(err)
	}
	if w.Familia == nil || *w.Familia != "Pérez" {
		t.Errorf("familia = %v, esperaba Pérez tras el Refresh", w.Familia)
	}
}
