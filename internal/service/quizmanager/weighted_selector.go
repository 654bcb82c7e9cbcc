package quizmanager

import (
	"log"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
)

// WeightedSelector выбирает вопрос случайно с весом (wrong+1)/(correct+1).
// Вопросы из списка недавних получают вес 0; если так обнулились все веса,
// фильтр недавних игнорируется.
type WeightedSelector struct {
	recent *RecentTracker
	rnd    RandomSource
}

// NewWeightedSelector создаёт взвешенный селектор
func NewWeightedSelector(recent *RecentTracker, rnd RandomSource) *WeightedSelector {
	return &WeightedSelector{
		recent: recent,
		rnd:    rnd,
	}
}

// Strategy возвращает имя стратегии
func (s *WeightedSelector) Strategy() string {
	return StrategyWeighted
}

// SelectNextQuestion выбирает следующий вопрос и запоминает его в списке недавних
func (s *WeightedSelector) SelectNextQuestion(questions []entity.Question, history entity.HistoryMap) *entity.Question {
	if len(questions) == 0 {
		return nil
	}

	recent := s.recent.Load()

	weights, totalWeight := computeWeights(questions, history, recent)
	if totalWeight == 0 {
		log.Printf("[WeightedSelector] All %d questions are recent, ignoring recent filter", len(questions))
		weights, totalWeight = computeWeights(questions, history, nil)
	}

	selected := pickWeighted(questions, weights, s.rnd.Float64()*totalWeight)

	recent.Push(selected.ID)
	if err := s.recent.Save(recent); err != nil {
		log.Printf("[WeightedSelector] Failed to update recent questions: %v", err)
	}

	normalized := selected.Normalized()
	return &normalized
}

// computeWeights считает вес каждого вопроса и их сумму.
// recent == nil означает "без фильтра недавних".
func computeWeights(questions []entity.Question, history entity.HistoryMap, recent *entity.RecentQueue) ([]float64, float64) {
	weights := make([]float64, len(questions))
	total := 0.0
	for i := range questions {
		if recent != nil && recent.Contains(questions[i].ID) {
			continue
		}
		stat := history.Stat(questions[i].ID)
		if !stat.Valid() {
			// Отрицательный счётчик даёт деление на ноль в Weight
			stat = entity.AnswerStat{}
		}
		weights[i] = stat.Weight()
		total += weights[i]
	}
	return weights, total
}

// pickWeighted проходит список, вычитая веса из value; побеждает первый вопрос
// с положительным весом, на котором остаток стал <= 0.
// Вопросы с нулевым весом пропускаются намеренно: при value == 0 недавний первый
// вопрос не выбирается, хотя при простом сравнении "остаток <= 0" выбрался бы.
// Если из-за округления никто не выбран, возвращается первый вопрос каталога.
func pickWeighted(questions []entity.Question, weights []float64, value float64) *entity.Question {
	for i := range questions {
		if weights[i] <= 0 {
			continue
		}
		value -= weights[i]
		if value <= 0 {
			return &questions[i]
		}
	}
	return &questions[0]
}
