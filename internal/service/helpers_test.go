package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore behaves like the redis store: values are copied through JSON and
// updates are serialized.
type memStore[T any] struct {
	mu   sync.Mutex
	data map[uuid.UUID][]byte
}

func newMemStore[T any]() *memStore[T] {
	return &memStore[T]{data: map[uuid.UUID][]byte{}}
}

func (s *memStore[T]) Create(_ context.Context, id uuid.UUID, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; ok {
		return e.ErrConflict
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data[id] = b
	return nil
}

func (s *memStore[T]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

func (s *memStore[T]) load(id uuid.UUID) (*T, error) {
	b, ok := s.data[id]
	if !ok {
		return nil, e.ErrSessionNotFound
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *memStore[T]) Update(_ context.Context, id uuid.UUID, fn func(*T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(v); err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s.data[id] = b
	return v, nil
}

func (s *memStore[T]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return e.ErrSessionNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *memStore[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// memReports is an in-memory incident service.
type memReports struct {
	mu        sync.Mutex
	incidents []domain.Incident
	creates   int
}

func (r *memReports) List(context.Context) ([]domain.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Incident(nil), r.incidents...), nil
}

func (r *memReports) Create(_ context.Context, n domain.NewIncident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.incidents = append(r.incidents, domain.Incident{
		ID:           uuid.NewString(),
		Description:  n.Description,
		IncidentType: n.IncidentType,
		Coordinates:  n.Coordinates,
		Address:      n.Address,
	})
	return nil
}

func strPtr(s string) *string { return &s }

func mustChoose(c domain.Category) domain.CategoryChoice {
	ch, err := domain.Choose(c)
	if err != nil {
		panic(err)
	}
	return ch
}
