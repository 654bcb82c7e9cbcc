package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

// HistoryKey — ключ, под которым хранится история ответов
const HistoryKey = "quiz_history"

// HistoryService хранит счётчики правильных/неправильных ответов по каждому вопросу.
// Обновление — полный read-modify-write карты, без атомарности между конкурентными писателями.
type HistoryService struct {
	store repository.KeyValueStore
}

// NewHistoryService создает сервис истории поверх переданного хранилища
func NewHistoryService(store repository.KeyValueStore) *HistoryService {
	return &HistoryService{store: store}
}

// GetHistory возвращает сохранённую историю.
// Отсутствие ключа, битый JSON или ошибка чтения дают пустую карту; ошибки только логируются.
// Записи с отрицательными счётчиками отбрасываются.
func (s *HistoryService) GetHistory() entity.HistoryMap {
	history := entity.HistoryMap{}
	if err := repository.GetJSON(s.store, HistoryKey, &history); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[HistoryService] Failed to load history, using empty: %v", err)
		}
		return entity.HistoryMap{}
	}
	if history == nil {
		// В хранилище лежит "null"
		return entity.HistoryMap{}
	}
	if dropped := history.DropInvalid(); len(dropped) > 0 {
		log.Printf("[HistoryService] Dropped corrupt history entries with negative counters: %v", dropped)
	}
	return history
}

// UpdateHistory увеличивает correct или wrong для вопроса на 1 и сохраняет карту целиком
func (s *HistoryService) UpdateHistory(questionID uint, isCorrect bool) (entity.AnswerStat, error) {
	history := s.GetHistory()
	stat := history.Record(questionID, isCorrect)

	if err := repository.SetJSON(s.store, HistoryKey, history); err != nil {
		return entity.AnswerStat{}, fmt.Errorf("%w: save history: %v", apperrors.ErrStorage, err)
	}

	log.Printf("[HistoryService] Question #%d: correct=%t → %d/%d (correct/wrong)",
		questionID, isCorrect, stat.Correct, stat.Wrong)
	return stat, nil
}

// ResetHistory удаляет сохранённую историю целиком
func (s *HistoryService) ResetHistory() error {
	if err := s.store.Delete(HistoryKey); err != nil {
		return fmt.Errorf("%w: reset history: %v", apperrors.ErrStorage, err)
	}
	log.Println("[HistoryService] History reset")
	return nil
}
