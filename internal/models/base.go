package models

import "time"

// Base contains common columns for all tables
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model managed by the schema, parents before children.
func All() []interface{} {
	return []interface{}{
		&Goal{},
		&Transaction{},
		&Settings{},
		&AuditLog{},
	}
}
