package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"piggybank/internal/patch"
	"piggybank/internal/services"
)

// SettingsHandler handles the global settings record.
type SettingsHandler struct {
	settingsService services.SettingsServicer
	auditService    services.AuditServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer, auditService services.AuditServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auditService: auditService}
}

// UpdateSettingsRequest represents a settings update. Currency and language
// are accepted for compatibility but always stay RUB and ru.
type UpdateSettingsRequest struct {
	Theme    patch.Field[string] `json:"theme" swaggertype:"string"`
	Currency patch.Field[string] `json:"currency" swaggertype:"string"`
	Language patch.Field[string] `json:"language" swaggertype:"string"`
}

// GetSettings returns the settings, creating the defaults on first access
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Success     200 {object} models.Settings
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies the theme from the body
// @Summary     Update settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body UpdateSettingsRequest true "Settings"
// @Success     200 {object} models.Settings
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	settings, err := h.settingsService.UpdateSettings(services.SettingsPatch{
		Theme:    req.Theme,
		Currency: req.Currency,
		Language: req.Language,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SETTINGS", "settings", settings.ID, c.ClientIP(),
		changedFields(map[string]interface{}{"theme": req.Theme}))

	c.JSON(http.StatusOK, settings)
}
