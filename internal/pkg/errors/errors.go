package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись, ключ хранилища или вопрос не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (неверный вариант ответа, битый каталог вопросов и т.п.).
	ErrValidation = errors.New("validation failed")

	// ErrStorage используется, когда бэкенд хранилища ключ-значение вернул ошибку записи.
	ErrStorage = errors.New("storage failure")

	// ErrConflict используется для конфликтов состояния.
	ErrConflict = errors.New("resource state conflict")
)
