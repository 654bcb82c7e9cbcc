// Package assets содержит данные, встроенные в бинарник.
package assets

import _ "embed"

// DefaultQuestions — каталог вопросов по умолчанию (используется, если quiz.questions_path не задан)
//
//go:embed questions.json
var DefaultQuestions []byte
