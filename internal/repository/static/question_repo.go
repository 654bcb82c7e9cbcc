package static

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/quiz-pwa/internal/assets"
	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository поверх JSON-каталога.
// После загрузки каталог только читается, поэтому блокировки не нужны.
type QuestionRepo struct {
	questions []entity.Question
	index     map[uint]int
}

// LoadQuestionRepo загружает каталог из файла.
// Пустой путь означает встроенный каталог по умолчанию.
func LoadQuestionRepo(path string) (*QuestionRepo, error) {
	if path == "" {
		log.Println("[QuestionRepo] Используется встроенный каталог вопросов")
		return NewQuestionRepo(assets.DefaultQuestions)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file %s: %w", path, err)
	}
	log.Printf("[QuestionRepo] Загрузка каталога вопросов из %s", path)
	return NewQuestionRepo(data)
}

// NewQuestionRepo разбирает и валидирует JSON-массив вопросов
func NewQuestionRepo(data []byte) (*QuestionRepo, error) {
	var questions []entity.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: failed to parse questions: %v", apperrors.ErrValidation, err)
	}

	validate := validator.New()
	index := make(map[uint]int, len(questions))

	for i := range questions {
		q := &questions[i]
		if err := validate.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: question #%d (id=%d): %v", apperrors.ErrValidation, i, q.ID, err)
		}
		if q.OptionsCount() > 0 && !q.IsValidOption(q.CorrectOption) {
			return nil, fmt.Errorf("%w: question id=%d: answer %d out of range [0, %d)",
				apperrors.ErrValidation, q.ID, q.CorrectOption, q.OptionsCount())
		}
		if _, dup := index[q.ID]; dup {
			return nil, fmt.Errorf("%w: %w: id=%d", apperrors.ErrValidation, repository.ErrDuplicateQuestionID, q.ID)
		}
		index[q.ID] = i
	}

	log.Printf("[QuestionRepo] Загружено вопросов: %d", len(questions))

	return &QuestionRepo{
		questions: questions,
		index:     index,
	}, nil
}

// GetAll возвращает копию списка вопросов в порядке каталога.
// Элементы копируются по значению; для полной изоляции используйте Question.Normalized.
func (r *QuestionRepo) GetAll() []entity.Question {
	out := make([]entity.Question, len(r.questions))
	copy(out, r.questions)
	return out
}

// GetByID возвращает копию вопроса по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", id, apperrors.ErrNotFound)
	}
	q := r.questions[i]
	return &q, nil
}

// Count возвращает количество вопросов
func (r *QuestionRepo) Count() int {
	return len(r.questions)
}
