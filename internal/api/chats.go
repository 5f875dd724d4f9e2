package api

import (
	"errors"
	"net/http"
	"strings"

	"whatsapp-console/internal/delivery"
	"whatsapp-console/internal/state"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Store  *state.Store
	Engine *delivery.Engine
}

func NewChatHandler(store *state.Store, engine *delivery.Engine) *ChatHandler {
	return &ChatHandler{Store: store, Engine: engine}
}

func (h *ChatHandler) GetChats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GetChats())
}

func (h *ChatHandler) GetChat(c *gin.Context) {
	chat, ok := h.Store.GetChat(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) GetActiveChat(c *gin.Context) {
	chat, ok := h.Store.GetActiveChat()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

type SetActiveChatRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
}

func (h *ChatHandler) SetActiveChat(c *gin.Context) {
	var req SetActiveChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.Store.SetActiveChat(req.ChatID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Active chat updated"})
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, outcome, err := h.Engine.SendText(c.Param("id"), req.Text)
	if err != nil {
		c.JSON(sendErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "outcome": outcome})
}

type SendTemplateRequest struct {
	TemplateID string                 `json:"template_id" binding:"required"`
	Bindings   map[string]interface{} `json:"bindings"`
}

func (h *ChatHandler) SendTemplate(c *gin.Context) {
	var req SendTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, outcome, err := h.Engine.SendTemplate(c.Param("id"), req.TemplateID, req.Bindings)
	if err != nil {
		c.JSON(sendErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "outcome": outcome})
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags"`
}

func (h *ChatHandler) UpdateTags(c *gin.Context) {
	var req UpdateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.Store.UpdateChatTags(c.Param("id"), req.Tags) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Tags updated"})
}

type AddNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *ChatHandler) AddNote(c *gin.Context) {
	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note text is empty"})
		return
	}

	note, ok := h.Store.AddChatNote(c.Param("id"), req.Text)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}
	c.JSON(http.StatusCreated, note)
}

func sendErrorStatus(err error) int {
	switch {
	case errors.Is(err, delivery.ErrChatNotFound), errors.Is(err, delivery.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrKillSwitchActive), errors.Is(err, delivery.ErrTemplateOnly):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
