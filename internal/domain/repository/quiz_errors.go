package repository

import "errors"

// ErrDuplicateQuestionID возвращается при загрузке каталога с повторяющимися ID вопросов
var ErrDuplicateQuestionID = errors.New("duplicate question id")
