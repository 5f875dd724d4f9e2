package api

import (
	"net/http"

	"whatsapp-console/internal/state"

	"github.com/gin-gonic/gin"
)

type SafetyHandler struct {
	Store *state.Store
}

func NewSafetyHandler(store *state.Store) *SafetyHandler {
	return &SafetyHandler{Store: store}
}

func (h *SafetyHandler) GetFlags(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GetSafetyFlags())
}

type SetGateRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetGate toggles a safety gate by its UI slug. Turning the kill switch on
// cascades to every running campaign.
func (h *SafetyHandler) SetGate(c *gin.Context) {
	var req SetGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gate := c.Param("gate")
	if !h.Store.SetSafetyGate(gate, *req.Enabled) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown gate: " + gate})
		return
	}
	c.JSON(http.StatusOK, h.Store.GetSafetyFlags())
}
