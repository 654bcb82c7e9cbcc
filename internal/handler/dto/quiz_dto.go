package dto

import (
	"strconv"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/handler/helper"
	"github.com/yourusername/quiz-pwa/internal/service"
)

// QuestionResponse — вопрос в формате для клиента, без правильного ответа
type QuestionResponse struct {
	ID       uint                    `json:"id"`
	Question string                  `json:"question"`
	Options  []helper.QuestionOption `json:"options"`
	UseKatex bool                    `json:"useKatex"`
}

// QuestionWithAnswerResponse — вопрос вместе с ответом и пояснением (формат исходного каталога)
type QuestionWithAnswerResponse struct {
	ID          uint     `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	UseKatex    bool     `json:"useKatex"`
}

// AnswerRequest — ответ пользователя на вопрос с вариантами
type AnswerRequest struct {
	SelectedOption *int `json:"selected_option" binding:"required"`
}

// RecordAnswerRequest — уже оценённый ответ (клиент сам решил, верен ли он)
type RecordAnswerRequest struct {
	IsCorrect *bool `json:"is_correct" binding:"required"`
}

// AnswerStatResponse — счётчики одного вопроса
type AnswerStatResponse struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// AnswerResponse — результат проверки ответа
type AnswerResponse struct {
	QuestionID    uint               `json:"question_id"`
	IsCorrect     bool               `json:"is_correct"`
	CorrectOption int                `json:"correct_option"`
	Explanation   string             `json:"explanation,omitempty"`
	Stat          AnswerStatResponse `json:"stat"`
}

// WeakQuestionResponse — вопрос из списка "слабых"
type WeakQuestionResponse struct {
	ID       uint    `json:"id"`
	Question string  `json:"question"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Weight   float64 `json:"weight"`
}

// StatsResponse — сводная статистика клиента
type StatsResponse struct {
	TotalQuestions int                    `json:"total_questions"`
	Answered       int                    `json:"answered"`
	Unanswered     int                    `json:"unanswered"`
	Correct        int                    `json:"correct"`
	Wrong          int                    `json:"wrong"`
	Accuracy       float64                `json:"accuracy"`
	AccuracyText   string                 `json:"accuracy_text"`
	Weakest        []WeakQuestionResponse `json:"weakest"`
	Strategy       string                 `json:"strategy"`
}

// NewQuestionResponse создает DTO для вопроса. Правильный ответ не раскрывается.
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:       q.ID,
		Question: q.Text,
		Options:  helper.ConvertOptionsToObjects(q.Options),
		UseKatex: q.KatexEnabled(),
	}
}

// NewQuestionWithAnswerResponse создает DTO вопроса с ответом
func NewQuestionWithAnswerResponse(q *entity.Question) QuestionWithAnswerResponse {
	options := []string(q.Options.Clone())
	if options == nil {
		options = []string{}
	}
	return QuestionWithAnswerResponse{
		ID:          q.ID,
		Question:    q.Text,
		Options:     options,
		Answer:      q.CorrectOption,
		Explanation: q.Explanation,
		UseKatex:    q.KatexEnabled(),
	}
}

// NewListQuestionResponse создает список DTO вопросов
func NewListQuestionResponse(questions []entity.Question) []QuestionResponse {
	result := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		result = append(result, NewQuestionResponse(&questions[i]))
	}
	return result
}

// NewAnswerResponse создает DTO результата ответа
func NewAnswerResponse(r *service.AnswerResult) *AnswerResponse {
	return &AnswerResponse{
		QuestionID:    r.QuestionID,
		IsCorrect:     r.IsCorrect,
		CorrectOption: r.CorrectOption,
		Explanation:   r.Explanation,
		Stat:          NewAnswerStatResponse(r.Stat),
	}
}

// NewAnswerStatResponse создает DTO счётчиков
func NewAnswerStatResponse(s entity.AnswerStat) AnswerStatResponse {
	return AnswerStatResponse{Correct: s.Correct, Wrong: s.Wrong}
}

// NewHistoryResponse приводит историю к JSON-виду с десятичными строковыми ключами
func NewHistoryResponse(h entity.HistoryMap) map[string]AnswerStatResponse {
	result := make(map[string]AnswerStatResponse, len(h))
	for id, stat := range h {
		result[strconv.FormatUint(uint64(id), 10)] = NewAnswerStatResponse(stat)
	}
	return result
}

// NewStatsResponse создает DTO статистики
func NewStatsResponse(s *service.Stats, strategy string) *StatsResponse {
	weakest := make([]WeakQuestionResponse, 0, len(s.Weakest))
	for _, qs := range s.Weakest {
		weakest = append(weakest, WeakQuestionResponse{
			ID:       qs.Question.ID,
			Question: qs.Question.Text,
			Correct:  qs.Stat.Correct,
			Wrong:    qs.Stat.Wrong,
			Weight:   qs.Stat.Weight(),
		})
	}
	return &StatsResponse{
		TotalQuestions: s.TotalQuestions,
		Answered:       s.Answered,
		Unanswered:     s.Unanswered,
		Correct:        s.Correct,
		Wrong:          s.Wrong,
		Accuracy:       s.Accuracy,
		AccuracyText:   helper.FormatAccuracy(s.Accuracy),
		Weakest:        weakest,
		Strategy:       strategy,
	}
}
