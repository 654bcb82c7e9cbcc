package quizmanager

import (
	"sort"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
)

// WrongFirstSelector сначала предлагает неотвеченные вопросы (случайно среди них),
// а когда их нет — вопрос с наибольшим числом ошибок.
type WrongFirstSelector struct {
	rnd RandomSource
}

// NewWrongFirstSelector создаёт селектор
func NewWrongFirstSelector(rnd RandomSource) *WrongFirstSelector {
	return &WrongFirstSelector{rnd: rnd}
}

// Strategy возвращает имя стратегии
func (s *WrongFirstSelector) Strategy() string {
	return StrategyWrongFirst
}

// SelectNextQuestion выбирает следующий вопрос. Каталог не изменяется.
func (s *WrongFirstSelector) SelectNextQuestion(questions []entity.Question, history entity.HistoryMap) *entity.Question {
	if len(questions) == 0 {
		return nil
	}

	sorted := make([]entity.Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return history.Stat(sorted[i].ID).Wrong > history.Stat(sorted[j].ID).Wrong
	})

	var unanswered []entity.Question
	for _, q := range sorted {
		if !history.Has(q.ID) {
			unanswered = append(unanswered, q)
		}
	}

	var selected entity.Question
	if len(unanswered) > 0 {
		selected = unanswered[s.rnd.Intn(len(unanswered))]
	} else {
		selected = sorted[0]
	}

	normalized := selected.Normalized()
	return &normalized
}
