package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
	"github.com/yourusername/quiz-pwa/internal/service/quizmanager"
)

// DefaultWeakestLimit — сколько "слабых" вопросов возвращает статистика
const DefaultWeakestLimit = 5

// QuestionService предоставляет операции над каталогом для одного клиента:
// выбор следующего вопроса, проверку ответа и статистику.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	history      *HistoryService
	recent       *quizmanager.RecentTracker
	selector     quizmanager.QuestionSelector
}

// NewQuestionService собирает сервис поверх хранилища клиента
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	store repository.KeyValueStore,
	config *quizmanager.Config,
	rnd quizmanager.RandomSource,
) (*QuestionService, error) {
	if config == nil {
		config = quizmanager.DefaultConfig()
	}
	selector, err := quizmanager.NewSelector(config, &quizmanager.Dependencies{
		Store:  store,
		Random: rnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create selector: %w", err)
	}

	return &QuestionService{
		questionRepo: questionRepo,
		history:      NewHistoryService(store),
		recent:       quizmanager.NewRecentTracker(store, config.RecentLimit),
		selector:     selector,
	}, nil
}

// History возвращает сервис истории того же клиента
func (s *QuestionService) History() *HistoryService {
	return s.history
}

// GetAllQuestions возвращает все вопросы каталога в виде нормализованных копий
func (s *QuestionService) GetAllQuestions() []entity.Question {
	questions := s.questionRepo.GetAll()
	for i := range questions {
		questions[i] = questions[i].Normalized()
	}
	return questions
}

// GetQuestion возвращает нормализованную копию вопроса
func (s *QuestionService) GetQuestion(questionID uint) (*entity.Question, error) {
	q, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	normalized := q.Normalized()
	return &normalized, nil
}

// SelectNextQuestion выбирает следующий вопрос; nil — каталог пуст
func (s *QuestionService) SelectNextQuestion() *entity.Question {
	question := s.selector.SelectNextQuestion(s.questionRepo.GetAll(), s.history.GetHistory())
	if question == nil {
		log.Printf("[QuestionService] No questions available (strategy=%s)", s.selector.Strategy())
		return nil
	}
	return question
}

// AnswerResult — результат проверки ответа
type AnswerResult struct {
	QuestionID    uint
	IsCorrect     bool
	CorrectOption int
	Explanation   string
	Stat          entity.AnswerStat
}

// SubmitAnswer проверяет выбранный вариант и записывает результат в историю
func (s *QuestionService) SubmitAnswer(questionID uint, selectedOption int) (*AnswerResult, error) {
	q, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if !q.IsValidOption(selectedOption) {
		return nil, fmt.Errorf("%w: option %d out of range for question %d", apperrors.ErrValidation, selectedOption, questionID)
	}

	isCorrect := q.IsCorrect(selectedOption)
	stat, err := s.history.UpdateHistory(questionID, isCorrect)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		QuestionID:    questionID,
		IsCorrect:     isCorrect,
		CorrectOption: q.CorrectOption,
		Explanation:   q.Explanation,
		Stat:          stat,
	}, nil
}

// RecordAnswer записывает уже оценённый ответ (например, для вопросов без вариантов)
func (s *QuestionService) RecordAnswer(questionID uint, isCorrect bool) (entity.AnswerStat, error) {
	if _, err := s.questionRepo.GetByID(questionID); err != nil {
		return entity.AnswerStat{}, err
	}
	return s.history.UpdateHistory(questionID, isCorrect)
}

// ResetRecent очищает список недавно показанных вопросов
func (s *QuestionService) ResetRecent() error {
	return s.recent.Reset()
}

// QuestionStat — вопрос каталога вместе с его счётчиками
type QuestionStat struct {
	Question entity.Question
	Stat     entity.AnswerStat
	Answered bool
}

// Stats — сводная статистика по каталогу
type Stats struct {
	TotalQuestions int
	Answered       int
	Unanswered     int
	Correct        int
	Wrong          int
	Accuracy       float64
	Weakest        []QuestionStat
}

// GetQuestionStats возвращает счётчики по каждому вопросу в порядке каталога.
// Записи истории для вопросов, которых нет в каталоге, пропускаются.
func (s *QuestionService) GetQuestionStats() []QuestionStat {
	history := s.history.GetHistory()
	questions := s.questionRepo.GetAll()

	stats := make([]QuestionStat, len(questions))
	for i, q := range questions {
		stats[i] = QuestionStat{
			Question: q.Normalized(),
			Stat:     history.Stat(q.ID),
			Answered: history.Has(q.ID),
		}
	}
	return stats
}

// GetStats считает сводную статистику и до weakestLimit вопросов с наибольшим числом ошибок
func (s *QuestionService) GetStats(weakestLimit int) *Stats {
	if weakestLimit <= 0 {
		weakestLimit = DefaultWeakestLimit
	}

	perQuestion := s.GetQuestionStats()
	stats := &Stats{TotalQuestions: len(perQuestion)}

	var weakest []QuestionStat
	for _, qs := range perQuestion {
		if !qs.Answered {
			stats.Unanswered++
			continue
		}
		stats.Answered++
		stats.Correct += qs.Stat.Correct
		stats.Wrong += qs.Stat.Wrong
		if qs.Stat.Wrong > 0 {
			weakest = append(weakest, qs)
		}
	}

	if total := stats.Correct + stats.Wrong; total > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(total)
	}

	sort.SliceStable(weakest, func(i, j int) bool {
		if weakest[i].Stat.Wrong != weakest[j].Stat.Wrong {
			return weakest[i].Stat.Wrong > weakest[j].Stat.Wrong
		}
		return weakest[i].Stat.Weight() > weakest[j].Stat.Weight()
	})
	if len(weakest) > weakestLimit {
		weakest = weakest[:weakestLimit]
	}
	stats.Weakest = weakest

	return stats
}
