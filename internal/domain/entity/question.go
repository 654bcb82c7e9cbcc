package entity

// StringArray - список вариантов ответа вопроса
type StringArray []string

// Clone возвращает независимую копию списка
func (o StringArray) Clone() StringArray {
	if o == nil {
		return nil
	}
	cloned := make(StringArray, len(o))
	copy(cloned, o)
	return cloned
}

// Question представляет вопрос из статического каталога.
// Каталог загружается один раз при старте и дальше только читается.
type Question struct {
	ID            uint        `json:"id" validate:"required"`
	Text          string      `json:"question" validate:"required"`
	Options       StringArray `json:"options,omitempty" validate:"omitempty,dive,required"`
	CorrectOption int         `json:"answer" validate:"gte=0"`
	Explanation   string      `json:"explanation,omitempty"`
	// UseKatex отсутствует в части вопросов исходного набора, поэтому указатель:
	// nil означает "не задано" и трактуется как false.
	UseKatex *bool `json:"useKatex,omitempty"`
}

// KatexEnabled возвращает значение useKatex с дефолтом false
func (q *Question) KatexEnabled() bool {
	return q.UseKatex != nil && *q.UseKatex
}

// Normalized возвращает копию вопроса с явно выставленным useKatex.
// Исходный вопрос каталога не изменяется.
func (q Question) Normalized() Question {
	useKatex := q.KatexEnabled()
	q.UseKatex = &useKatex
	q.Options = q.Options.Clone()
	return q
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectOption
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}
