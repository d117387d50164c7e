// Package store — memory.go: in-memory реализация Store.
// Это тест-дублёр: все тесты сервисов гоняются против него,
// без поднятого PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory хранит документы в map коллекция → id → тело.
// Потокобезопасен: mutex на каждую операцию.
type Memory struct {
	mu   sync.Mutex
	docs map[Collection]map[string]json.RawMessage
	// order сохраняет порядок вставки по коллекции, чтобы List
	// был детерминированным (как ORDER BY created_at у postgres-версии).
	order map[Collection][]string
}

// NewMemory создаёт пустое in-memory хранилище.
func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[Collection]map[string]json.RawMessage),
		order: make(map[Collection][]string),
	}
}

func (s *Memory) Get(ctx context.Context, kind Collection, id string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.docs[kind][id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out, nil
}

func (s *Memory) Create(ctx context.Context, kind Collection, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации документа (%s): %w", kind, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[kind] == nil {
		s.docs[kind] = make(map[string]json.RawMessage)
	}
	id := uuid.NewString()
	s.docs[kind][id] = data
	s.order[kind] = append(s.order[kind], id)
	return id, nil
}

// CreateWithID пишет документ под заданным снаружи id (upsert).
func (s *Memory) CreateWithID(ctx context.Context, kind Collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа (%s/%s): %w", kind, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[kind] == nil {
		s.docs[kind] = make(map[string]json.RawMessage)
	}
	if _, ok := s.docs[kind][id]; !ok {
		s.order[kind] = append(s.order[kind], id)
	}
	s.docs[kind][id] = data
	return nil
}

func (s *Memory) Update(ctx context.Context, kind Collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.docs[kind][id]
	if !ok {
		return ErrNotFound
	}

	// Merge по верхнеуровневым ключам — как data || patch в jsonb.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("ошибка разбора документа (%s/%s): %w", kind, id, err)
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("ошибка сериализации поля %q: %w", k, err)
		}
		doc[k] = raw
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа (%s/%s): %w", kind, id, err)
	}
	s.docs[kind][id] = merged
	return nil
}

func (s *Memory) List(ctx context.Context, kind Collection) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, id := range s.order[kind] {
		data, ok := s.docs[kind][id]
		if !ok {
			continue // удалён
		}
		cp := make(json.RawMessage, len(data))
		copy(cp, data)
		out = append(out, Record{ID: id, Data: cp})
	}
	return out, nil
}

func (s *Memory) Delete(ctx context.Context, kind Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[kind][id]; !ok {
		return ErrNotFound
	}
	delete(s.docs[kind], id)
	return nil
}
