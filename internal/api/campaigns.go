package api

import (
	"net/http"

	"whatsapp-console/internal/models"
	"whatsapp-console/internal/state"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	Store *state.Store
}

func NewCampaignHandler(store *state.Store) *CampaignHandler {
	return &CampaignHandler{Store: store}
}

func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GetCampaigns())
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, ok := h.Store.GetCampaign(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var validStatuses = map[string]bool{
	models.CampaignRunning:   true,
	models.CampaignPaused:    true,
	models.CampaignThrottled: true,
	models.CampaignStopped:   true,
}

// UpdateStatus applies an operator pause/resume/stop. Stopped campaigns
// are terminal and reject further changes.
func (h *CampaignHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + req.Status})
		return
	}

	if !h.Store.UpdateCampaignStatus(c.Param("id"), req.Status) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found or already stopped"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Campaign status updated"})
}

// UpdateMetrics merges a counts update and returns the campaign after the
// auto-governor has run, so the caller sees any automatic transition.
func (h *CampaignHandler) UpdateMetrics(c *gin.Context) {
	var req state.CampaignCounts
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, ok := h.Store.UpdateCampaignMetrics(c.Param("id"), req)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}
