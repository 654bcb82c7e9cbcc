package repository

import (
	"github.com/yourusername/quiz-pwa/internal/domain/entity"
)

// QuestionRepository определяет доступ к статическому каталогу вопросов.
// Каталог неизменяем: реализации не должны отдавать наружу внутренние указатели.
type QuestionRepository interface {
	// GetAll возвращает все вопросы в порядке каталога
	GetAll() []entity.Question
	// GetByID возвращает вопрос по ID или apperrors.ErrNotFound
	GetByID(id uint) (*entity.Question, error)
	// Count возвращает количество вопросов
	Count() int
}
