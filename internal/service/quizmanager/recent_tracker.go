package quizmanager

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

// RecentKey — ключ, под которым хранится список недавних вопросов
const RecentKey = "recentQuestions"

// RecentTracker хранит очередь недавно выбранных вопросов отдельно от истории ответов
type RecentTracker struct {
	store repository.KeyValueStore
	limit int
}

// NewRecentTracker создает трекер; limit <= 0 означает entity.DefaultRecentLimit
func NewRecentTracker(store repository.KeyValueStore, limit int) *RecentTracker {
	if limit <= 0 {
		limit = entity.DefaultRecentLimit
	}
	return &RecentTracker{store: store, limit: limit}
}

// Load читает очередь из хранилища. Битые данные логируются и дают пустую очередь.
func (t *RecentTracker) Load() *entity.RecentQueue {
	var ids []uint
	if err := repository.GetJSON(t.store, RecentKey, &ids); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[RecentTracker] Error parsing recent questions: %v", err)
		}
		return entity.NewRecentQueue(t.limit, nil)
	}
	return entity.NewRecentQueue(t.limit, ids)
}

// Save сохраняет уже загруженную очередь
func (t *RecentTracker) Save(queue *entity.RecentQueue) error {
	if err := repository.SetJSON(t.store, RecentKey, queue.IDs()); err != nil {
		return fmt.Errorf("%w: save recent questions: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// Reset очищает очередь недавних вопросов
func (t *RecentTracker) Reset() error {
	if err := t.store.Delete(RecentKey); err != nil {
		return fmt.Errorf("%w: reset recent questions: %v", apperrors.ErrStorage, err)
	}
	return nil
}
