package models

import "time"

// Goal is a savings target. CurrentBalance is derived from the goal's
// transactions and is only ever written by the balance recalculation.
type Goal struct {
	Base
	Title          string     `gorm:"not null;index" json:"title"`
	TargetAmount   float64    `gorm:"not null" json:"target_amount"`
	CurrentBalance float64    `gorm:"not null;default:0" json:"current_balance"`
	TargetDate     *time.Time `json:"target_date"`
	Description    *string    `json:"description"`
	ImageURL       *string    `gorm:"column:image_url" json:"image_url"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:GoalID" json:"-"`
}
