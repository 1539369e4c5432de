package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "piggybank/internal/errors"
	"piggybank/internal/models"
)

// settingsService manages the single global settings record.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the settings record, creating it on first access.
// Currency and language are pinned in the response only.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	settings, err := firstOrCreateSettings(s.db)
	if err != nil {
		return nil, err
	}
	settings.ClampLocale()
	return settings, nil
}

// UpdateSettings applies every non-null field except currency and language,
// then pins currency and language and persists the record.
func (s *settingsService) UpdateSettings(p SettingsPatch) (*models.Settings, error) {
	var settings *models.Settings
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		settings, err = firstOrCreateSettings(tx)
		if err != nil {
			return err
		}

		if p.Theme.HasValue() {
			settings.Theme = p.Theme.Value
		}
		// p.Currency and p.Language are intentionally dropped.
		settings.ClampLocale()

		if err := tx.Save(settings).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// EnsureDefaults creates the default settings record if none exists.
func (s *settingsService) EnsureDefaults() error {
	_, err := firstOrCreateSettings(s.db)
	return err
}

// firstOrCreateSettings reads the singleton row, inserting the defaults first
// when it is missing. The insert ignores a conflict on the singleton key, so a
// concurrent first access ends up reading the row the other request created.
func firstOrCreateSettings(db *gorm.DB) (*models.Settings, error) {
	settings, err := findSettings(db)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "singleton_key"}},
		DoNothing: true,
	}).Create(models.DefaultSettings()).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings, err = findSettings(db)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

func findSettings(db *gorm.DB) (*models.Settings, error) {
	var settings models.Settings
	if err := db.Where("singleton_key = ?", models.SettingsSingletonKey).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
