package api

import (
	"net/http"

	"whatsapp-console/internal/delivery"
	"whatsapp-console/internal/models"
	"whatsapp-console/internal/simulate"
	"whatsapp-console/internal/state"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Store  *state.Store
	Engine *delivery.Engine
}

func NewDashboardHandler(store *state.Store, engine *delivery.Engine) *DashboardHandler {
	return &DashboardHandler{Store: store, Engine: engine}
}

func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GetMetrics())
}

func (h *DashboardHandler) UpdateMetrics(c *gin.Context) {
	var req state.MetricsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Store.UpdateMetrics(req))
}

func (h *DashboardHandler) GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GetCalculatedRates())
}

type IncrementRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

func (h *DashboardHandler) IncrementCount(c *gin.Context) {
	var req IncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Outcome {
	case models.OutcomeDelivered, models.OutcomeFailed, models.OutcomeBlocked:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid outcome: " + req.Outcome})
		return
	}

	h.Store.IncrementMessageCount(req.Outcome)
	c.JSON(http.StatusOK, h.Store.GetMetrics())
}

type BatchRequest struct {
	Count int `json:"count"`
}

func (h *DashboardHandler) SimulateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count <= 0 {
		req.Count = 100
	}

	breakdown := h.Engine.SimulateBatch(req.Count)
	c.JSON(http.StatusOK, gin.H{
		"simulated": req.Count,
		"breakdown": breakdown,
		"metrics":   h.Store.GetMetrics(),
	})
}

func (h *DashboardHandler) GetCharts(c *gin.Context) {
	timeRange := c.DefaultQuery("range", "24h")
	if timeRange != "24h" && timeRange != "7d" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid range: " + timeRange})
		return
	}
	c.JSON(http.StatusOK, simulate.ChartSeries(timeRange))
}

func (h *DashboardHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GetPreferences())
}

func (h *DashboardHandler) UpdatePreferences(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.UpdatePreferences(prefs)
	c.JSON(http.StatusOK, prefs)
}

func (h *DashboardHandler) Reset(c *gin.Context) {
	h.Store.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "State reset to defaults"})
}
