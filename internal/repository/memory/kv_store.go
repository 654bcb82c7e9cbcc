package memory

import (
	"sync"

	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

// KVStore — хранилище ключ-значение в памяти процесса.
// Используется по умолчанию для локального запуска и в тестах.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore создает пустое хранилище
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get получает значение по ключу
func (s *KVStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return val, nil
}

// Set сохраняет значение
func (s *KVStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete удаляет значение; удаление отсутствующего ключа не ошибка
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Exists проверяет существование ключа
func (s *KVStore) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

// Len возвращает количество ключей
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
