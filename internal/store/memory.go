package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore хранилище снимков в памяти, используется в тестах
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Load(_ context.Context, bucket string, dest any) bool {
	s.mu.RLock()
	raw, ok := s.data[bucket]
	s.mu.RUnlock()

	if !ok {
		return true
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true
	}
	return false
}

func (s *MemStore) Save(_ context.Context, bucket string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal bucket %s: %w", bucket, err)
	}

	s.mu.Lock()
	s.data[bucket] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Delete(_ context.Context, bucket string) error {
	s.mu.Lock()
	delete(s.data, bucket)
	s.mu.Unlock()
	return nil
}

// PutRaw кладёт сырые байты в бакет, минуя сериализацию (для тестов повреждённых данных)
func (s *MemStore) PutRaw(bucket string, raw []byte) {
	s.mu.Lock()
	s.data[bucket] = append([]byte(nil), raw...)
	s.mu.Unlock()
}

// Has сообщает существует ли бакет
func (s *MemStore) Has(bucket string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[bucket]
	return ok
}
