package postgres

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

// KVStore реализует repository.KeyValueStore поверх таблицы kv_entries
type KVStore struct {
	db *gorm.DB
}

// NewKVStore создает новый репозиторий ключ-значение
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get получает значение по ключу
func (r *KVStore) Get(key string) (string, error) {
	var entry entity.KVEntry
	err := r.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to get kv entry %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set сохраняет значение (INSERT ... ON CONFLICT DO UPDATE)
func (r *KVStore) Set(key string, value string) error {
	now := time.Now()
	err := r.db.Exec(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, now).Error
	if err != nil {
		log.Printf("[KVStore] Ошибка при записи ключа %s: %v", key, err)
		return fmt.Errorf("failed to set kv entry %q: %w", key, err)
	}
	return nil
}

// Delete удаляет значение по ключу
func (r *KVStore) Delete(key string) error {
	result := r.db.Where("key = ?", key).Delete(&entity.KVEntry{})
	if result.Error != nil {
		log.Printf("[KVStore] Ошибка при удалении ключа %s: %v", key, result.Error)
		return fmt.Errorf("failed to delete kv entry %q: %w", key, result.Error)
	}
	return nil
}

// Exists проверяет существование ключа
func (r *KVStore) Exists(key string) (bool, error) {
	var count int64
	if err := r.db.Model(&entity.KVEntry{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check kv entry %q: %w", key, err)
	}
	return count > 0, nil
}
