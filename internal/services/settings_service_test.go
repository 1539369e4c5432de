package services

import (
	"testing"

	"piggybank/internal/models"
	"piggybank/internal/patch"
	"piggybank/internal/testutil"
)

func countSettings(t *testing.T, svc SettingsServicer) int64 {
	t.Helper()
	var count int64
	svc.(*settingsService).db.Model(&models.Settings{}).Count(&count)
	return count
}

func TestGetSettings(t *testing.T) {
	t.Run("creates_defaults_on_first_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		settings, err := svc.GetSettings()
		testutil.AssertNoError(t, err)

		if settings.ID == 0 {
			t.Fatal("expected settings to be persisted")
		}
		if settings.Theme != models.DefaultTheme {
			t.Errorf("expected theme %q, got %q", models.DefaultTheme, settings.Theme)
		}
		if settings.Currency != "RUB" || settings.Language != "ru" {
			t.Errorf("expected RUB/ru, got %s/%s", settings.Currency, settings.Language)
		}
	})

	t.Run("single_row_after_repeated_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		first, err := svc.GetSettings()
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.EnsureDefaults())
		second, err := svc.GetSettings()
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected the same record, got ids %d and %d", first.ID, second.ID)
		}
		if n := countSettings(t, svc); n != 1 {
			t.Errorf("expected 1 settings row, got %d", n)
		}
	})

	t.Run("clamps_locale_in_response_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		stored := testutil.CreateTestSettings(t, db, "dark", "USD", "en")

		settings, err := svc.GetSettings()
		testutil.AssertNoError(t, err)
		if settings.Theme != "dark" {
			t.Errorf("expected theme dark, got %q", settings.Theme)
		}
		if settings.Currency != "RUB" || settings.Language != "ru" {
			t.Errorf("expected RUB/ru in response, got %s/%s", settings.Currency, settings.Language)
		}

		var raw models.Settings
		testutil.AssertNoError(t, db.First(&raw, stored.ID).Error)
		if raw.Currency != "USD" || raw.Language != "en" {
			t.Errorf("expected stored USD/en to be untouched by a read, got %s/%s", raw.Currency, raw.Language)
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Run("applies_theme", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		settings, err := svc.UpdateSettings(SettingsPatch{Theme: patch.Value("dark")})
		testutil.AssertNoError(t, err)
		if settings.Theme != "dark" {
			t.Errorf("expected theme dark, got %q", settings.Theme)
		}

		again, err := svc.GetSettings()
		testutil.AssertNoError(t, err)
		if again.Theme != "dark" {
			t.Errorf("expected persisted theme dark, got %q", again.Theme)
		}
	})

	t.Run("locale_is_locked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		settings, err := svc.UpdateSettings(SettingsPatch{
			Theme:    patch.Value("dark"),
			Currency: patch.Value("USD"),
			Language: patch.Value("en"),
		})
		testutil.AssertNoError(t, err)
		if settings.Currency != "RUB" || settings.Language != "ru" {
			t.Errorf("expected RUB/ru, got %s/%s", settings.Currency, settings.Language)
		}
	})

	t.Run("persists_clamp_over_legacy_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		stored := testutil.CreateTestSettings(t, db, "light", "EUR", "de")

		_, err := svc.UpdateSettings(SettingsPatch{})
		testutil.AssertNoError(t, err)

		var raw models.Settings
		testutil.AssertNoError(t, db.First(&raw, stored.ID).Error)
		if raw.Currency != "RUB" || raw.Language != "ru" {
			t.Errorf("expected stored RUB/ru after update, got %s/%s", raw.Currency, raw.Language)
		}
	})

	t.Run("null_theme_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		_, err := svc.UpdateSettings(SettingsPatch{Theme: patch.Value("dark")})
		testutil.AssertNoError(t, err)

		settings, err := svc.UpdateSettings(SettingsPatch{Theme: patch.Null[string]()})
		testutil.AssertNoError(t, err)
		if settings.Theme != "dark" {
			t.Errorf("expected theme to stay dark, got %q", settings.Theme)
		}
		if n := countSettings(t, svc); n != 1 {
			t.Errorf("expected 1 settings row, got %d", n)
		}
	})
}
