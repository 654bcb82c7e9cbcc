package entity

// AnswerStat хранит счётчики ответов на один вопрос.
// Значения только растут; обнуление возможно лишь через полный сброс истории.
type AnswerStat struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Total возвращает общее количество ответов
func (s AnswerStat) Total() int {
	return s.Correct + s.Wrong
}

// Valid сообщает, что оба счётчика неотрицательны
func (s AnswerStat) Valid() bool {
	return s.Correct >= 0 && s.Wrong >= 0
}

// Weight возвращает вес вопроса для взвешенного выбора: (wrong + 1) / (correct + 1).
// Чем чаще на вопрос отвечали неправильно, тем выше вес.
func (s AnswerStat) Weight() float64 {
	return float64(s.Wrong+1) / float64(s.Correct+1)
}

// Accuracy возвращает долю правильных ответов (0 если ответов не было)
func (s AnswerStat) Accuracy() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total())
}

// HistoryMap — история ответов: ID вопроса → счётчики.
// В JSON ключи сериализуются десятичными строками: {"1":{"correct":2,"wrong":0}}.
type HistoryMap map[uint]AnswerStat

// Stat возвращает счётчики вопроса или {0,0}, если ответов ещё не было
func (h HistoryMap) Stat(questionID uint) AnswerStat {
	return h[questionID]
}

// Has сообщает, есть ли в истории запись для вопроса
func (h HistoryMap) Has(questionID uint) bool {
	_, ok := h[questionID]
	return ok
}

// Record увеличивает correct или wrong на 1 и возвращает новое значение.
// Запись создаётся при первом ответе.
func (h HistoryMap) Record(questionID uint, isCorrect bool) AnswerStat {
	stat := h[questionID]
	if isCorrect {
		stat.Correct++
	} else {
		stat.Wrong++
	}
	h[questionID] = stat
	return stat
}

// DropInvalid удаляет записи с отрицательными счётчиками и возвращает их ID
func (h HistoryMap) DropInvalid() []uint {
	var dropped []uint
	for id, stat := range h {
		if !stat.Valid() {
			delete(h, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}
