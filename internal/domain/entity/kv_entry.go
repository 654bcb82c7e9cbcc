package entity

import "time"

// KVEntry — строка таблицы kv_entries, в которой PostgreSQL-бэкенд
// хранит значения хранилища ключ-значение.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName задает имя таблицы для GORM.
func (KVEntry) TableName() string {
	return "kv_entries"
}
