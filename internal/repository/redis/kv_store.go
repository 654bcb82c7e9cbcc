package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

// KVStore реализует repository.KeyValueStore поверх Redis
type KVStore struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewKVStore создает хранилище ключ-значение и возвращает ошибку при проблемах
func NewKVStore(client redis.UniversalClient) (*KVStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for KVStore")
	}
	return &KVStore{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// Get получает значение по ключу
func (r *KVStore) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Set сохраняет значение без срока жизни (как localStorage)
func (r *KVStore) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Delete удаляет значение по ключу
func (r *KVStore) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Exists проверяет существование ключа
func (r *KVStore) Exists(key string) (bool, error) {
	result, err := r.client.Exists(r.ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}
