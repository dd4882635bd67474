package session_service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"jandita-bot/pkg/redis"
)

// Store persistencia de sesiones. Load de un usuario desconocido devuelve una sesión Idle.
type Store interface {
	Load(ctx context.Context, userID int64) (EditSession, error)
	Save(ctx context.Context, userID int64, s EditSession) error
	Delete(ctx context.Context, userID int64) error
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]EditSession
}

func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[int64]EditSession)}
}

func (m *memoryStore) Load(_ context.Context, userID int64) (EditSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID], nil
}

func (m *memoryStore) Save(_ context.Context, userID int64, s EditSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
	return nil
}

func (m *memoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Load(ctx context.Context, userID int64) (EditSession, error) {
	data, err := r.client.GetSession(ctx, userID)
	if err != nil {
		return EditSession{}, fmt.Errorf("leer sesión %d: %w", userID, err)
	}
	if data == nil {
		return EditSession{}, nil
	}

	var s EditSession
	if err := json.Unmarshal(data, &s); err != nil {
		return EditSession{}, fmt.Errorf("decodificar sesión %d: %w", userID, err)
	}
	return s, nil
}

func (r *redisStore) Save(ctx context.Context, userID int64, s EditSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.SetSession(ctx, userID, data)
}

func (r *redisStore) Delete(ctx context.Context, userID int64) error {
	return r.client.DeleteSession(ctx, userID)
}
