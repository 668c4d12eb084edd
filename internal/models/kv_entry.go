package models

import "time"

// KVEntry backs the gorm key-value driver. Value holds the raw JSON
// document written by the stores.
type KVEntry struct {
	Key   string `gorm:"primaryKey;size:191" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
