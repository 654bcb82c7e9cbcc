package helper

import (
	"strconv"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
)

// QuestionOption представляет вариант ответа для фронтенда
type QuestionOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// ConvertOptionsToObjects преобразует массив строк в массив объектов с id и text.
// ID совпадает с 0-based индексом, который ожидает поле answer.
func ConvertOptionsToObjects(options entity.StringArray) []QuestionOption {
	converted := make([]QuestionOption, len(options))
	for i, opt := range options {
		if opt == "" {
			opt = "(пустой вариант)"
		}
		converted[i] = QuestionOption{ID: i, Text: opt}
	}
	return converted
}

// FormatAccuracy форматирует долю правильных ответов как процент с одним знаком
func FormatAccuracy(accuracy float64) string {
	return strconv.FormatFloat(accuracy*100, 'f', 1, 64) + "%"
}
