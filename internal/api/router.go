package api

import (
	"net/http"

	"whatsapp-console/internal/delivery"
	"whatsapp-console/internal/state"

	"github.com/gin-gonic/gin"
)

// WsServer is the websocket endpoint the router mounts at /ws.
type WsServer interface {
	ServeWs(w http.ResponseWriter, r *http.Request)
}

// NewRouter wires every console endpoint onto a gin engine.
func NewRouter(store *state.Store, engine *delivery.Engine, hub WsServer) *gin.Engine {
	chatHandler := NewChatHandler(store, engine)
	campaignHandler := NewCampaignHandler(store)
	safetyHandler := NewSafetyHandler(store)
	dashboardHandler := NewDashboardHandler(store, engine)
	templateHandler := NewTemplateHandler(store)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	apiGroup := r.Group("/api")
	{
		// Chat Routes
		apiGroup.GET("/chats", chatHandler.GetChats)
		apiGroup.GET("/chats/:id", chatHandler.GetChat)
		apiGroup.POST("/chats/:id/messages", chatHandler.SendMessage)
		apiGroup.POST("/chats/:id/template", chatHandler.SendTemplate)
		apiGroup.PUT("/chats/:id/tags", chatHandler.UpdateTags)
		apiGroup.POST("/chats/:id/notes", chatHandler.AddNote)
		apiGroup.GET("/active-chat", chatHandler.GetActiveChat)
		apiGroup.PUT("/active-chat", chatHandler.SetActiveChat)

		// Campaign Routes
		apiGroup.GET("/campaigns", campaignHandler.GetCampaigns)
		apiGroup.GET("/campaigns/:id", campaignHandler.GetCampaign)
		apiGroup.PUT("/campaigns/:id/status", campaignHandler.UpdateStatus)
		apiGroup.PUT("/campaigns/:id/metrics", campaignHandler.UpdateMetrics)

		// Safety Gate Routes
		apiGroup.GET("/safety/flags", safetyHandler.GetFlags)
		apiGroup.PUT("/safety/gates/:gate", safetyHandler.SetGate)

		// Dashboard Routes
		apiGroup.GET("/metrics", dashboardHandler.GetMetrics)
		apiGroup.PUT("/metrics", dashboardHandler.UpdateMetrics)
		apiGroup.GET("/metrics/rates", dashboardHandler.GetRates)
		apiGroup.POST("/metrics/increment", dashboardHandler.IncrementCount)
		apiGroup.POST("/simulate/batch", dashboardHandler.SimulateBatch)
		apiGroup.GET("/charts", dashboardHandler.GetCharts)
		apiGroup.GET("/preferences", dashboardHandler.GetPreferences)
		apiGroup.PUT("/preferences", dashboardHandler.UpdatePreferences)
		apiGroup.POST("/reset", dashboardHandler.Reset)

		// Template Routes
		apiGroup.GET("/templates", templateHandler.GetTemplates)
		apiGroup.GET("/templates/:id", templateHandler.GetTemplate)
	}

	if hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			hub.ServeWs(c.Writer, c.Request)
		})
	}

	return r
}
