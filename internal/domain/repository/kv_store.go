package repository

import (
	"encoding/json"
	"fmt"
)

// KeyValueStore определяет строковое хранилище ключ-значение.
// Контракт повторяет localStorage: Get/Set/Delete по строковому ключу.
// Отсутствующий ключ в Get возвращается как apperrors.ErrNotFound.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
	Exists(key string) (bool, error)
}

// ScopedStore добавляет префикс ко всем ключам базового хранилища.
// Используется для изоляции данных разных клиентов в одном бэкенде.
type ScopedStore struct {
	base   KeyValueStore
	prefix string
}

// NewScopedStore создает хранилище с префиксом ключей
func NewScopedStore(base KeyValueStore, prefix string) *ScopedStore {
	return &ScopedStore{base: base, prefix: prefix}
}

// Prefix возвращает префикс ключей
func (s *ScopedStore) Prefix() string {
	return s.prefix
}

// Get получает значение по ключу с префиксом
func (s *ScopedStore) Get(key string) (string, error) {
	return s.base.Get(s.prefix + key)
}

// Set сохраняет значение по ключу с префиксом
func (s *ScopedStore) Set(key string, value string) error {
	return s.base.Set(s.prefix+key, value)
}

// Delete удаляет значение по ключу с префиксом
func (s *ScopedStore) Delete(key string) error {
	return s.base.Delete(s.prefix + key)
}

// Exists проверяет существование ключа с префиксом
func (s *ScopedStore) Exists(key string) (bool, error) {
	return s.base.Exists(s.prefix + key)
}

// GetJSON читает значение и декодирует его из JSON в dest.
// Ошибка хранилища возвращается как есть, ошибка декодирования оборачивается.
func GetJSON(store KeyValueStore, key string, dest interface{}) error {
	raw, err := store.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// SetJSON кодирует значение в JSON и сохраняет его
func SetJSON(store KeyValueStore, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return store.Set(key, string(data))
}
