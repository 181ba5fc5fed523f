package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// GetSettingsHandler godoc
// @Summary Current settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /settings [get]
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsStore.Get())
}

// UpdateSettingsHandler godoc
// @Summary Update settings
// @Description Replaces the runtime settings. A changed alert threshold takes
// @Description effect immediately: every classification reads it per call.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.Settings true "New settings"
// @Success 200 {object} models.Settings
// @Failure 400 {string} string "Invalid settings"
// @Router /settings [put]
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if req.AlertThresholdDays < 0 {
		http.Error(w, "alert threshold must be zero or positive", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.DefaultCategory) == "" {
		http.Error(w, "default category is required", http.StatusBadRequest)
		return
	}

	settingsStore.Update(req)
	writeJSON(w, http.StatusOK, settingsStore.Get())
}
