package api

import (
	"github.com/gin-gonic/gin"
)

const configKeyThresholdDays = "reminder_threshold_days"

// GetSettings returns the tunable business settings.
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	success(c, gin.H{
		"thresholdDays": h.thresholdDays,
	})
}

// UpdateSettings persists a new reminder threshold. The value survives
// restarts via the config table and wins over config.toml.
// PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req struct {
		ThresholdDays int `json:"thresholdDays"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "invalid request body")
		return
	}
	if req.ThresholdDays < 0 {
		errorResponse(c, 1003, "thresholdDays must not be negative")
		return
	}

	if err := h.store.SetConfigInt(configKeyThresholdDays, req.ThresholdDays); err != nil {
		errorResponse(c, 5003, "could not save settings")
		return
	}
	h.thresholdDays = req.ThresholdDays
	success(c, gin.H{"thresholdDays": h.thresholdDays})
}
