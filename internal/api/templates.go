package api

import (
	"net/http"

	"whatsapp-console/internal/state"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	Store *state.Store
}

func NewTemplateHandler(store *state.Store) *TemplateHandler {
	return &TemplateHandler{Store: store}
}

// GetTemplates lists all templates, or the ones matching ?q= when given.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		c.JSON(http.StatusOK, h.Store.SearchTemplates(query))
		return
	}
	c.JSON(http.StatusOK, h.Store.GetTemplates())
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, ok := h.Store.GetTemplate(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, tmpl)
}
