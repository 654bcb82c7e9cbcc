package entity

// DefaultRecentLimit — сколько последних вопросов временно исключается из выбора
const DefaultRecentLimit = 5

// RecentQueue — ограниченная очередь последних показанных вопросов.
// Без дубликатов, при переполнении вытесняется самый старый ID.
type RecentQueue struct {
	ids   []uint
	limit int
}

// NewRecentQueue создаёт очередь из сохранённого списка.
// Список из хранилища может быть "грязным": дубликаты схлопываются
// (остаётся самое позднее вхождение), лишние старые ID отбрасываются.
func NewRecentQueue(limit int, ids []uint) *RecentQueue {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	q := &RecentQueue{
		ids:   make([]uint, 0, limit+1),
		limit: limit,
	}
	for _, id := range ids {
		q.Push(id)
	}
	return q
}

// Push добавляет ID в конец очереди.
// Если ID уже есть, он переносится в конец; если превышен лимит, удаляется самый старый.
func (q *RecentQueue) Push(id uint) {
	for i, existing := range q.ids {
		if existing == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			break
		}
	}
	q.ids = append(q.ids, id)
	if len(q.ids) > q.limit {
		q.ids = q.ids[len(q.ids)-q.limit:]
	}
}

// Contains проверяет, находится ли вопрос в списке недавних
func (q *RecentQueue) Contains(id uint) bool {
	for _, existing := range q.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len возвращает текущий размер очереди
func (q *RecentQueue) Len() int {
	return len(q.ids)
}

// Limit возвращает ёмкость очереди
func (q *RecentQueue) Limit() int {
	return q.limit
}

// IDs возвращает копию списка, от старого к новому
func (q *RecentQueue) IDs() []uint {
	ids := make([]uint, len(q.ids))
	copy(ids, q.ids)
	return ids
}
