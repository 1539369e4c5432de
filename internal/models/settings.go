package models

import "time"

// Locked locale values. They are stored and returned, but never client-editable.
const (
	SettingsSingletonKey = "global"
	DefaultTheme         = "light"
	FixedCurrency        = "RUB"
	FixedLanguage        = "ru"
)

// Settings is the single global preferences record. The unique SingletonKey
// keeps concurrent first access from inserting a second row.
type Settings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SingletonKey string    `gorm:"not null;uniqueIndex" json:"-"`
	Theme        string    `gorm:"not null;default:'light'" json:"theme"`
	Currency     string    `gorm:"not null;default:'RUB'" json:"currency"`
	Language     string    `gorm:"not null;default:'ru'" json:"language"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table name stable regardless of pluralization rules.
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns an unsaved settings record with default values.
func DefaultSettings() *Settings {
	return &Settings{
		SingletonKey: SettingsSingletonKey,
		Theme:        DefaultTheme,
		Currency:     FixedCurrency,
		Language:     FixedLanguage,
	}
}

// ClampLocale pins currency and language to their fixed values.
func (s *Settings) ClampLocale() {
	s.Currency = FixedCurrency
	s.Language = FixedLanguage
}
