package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// ChatMessages serves the group chat, from the poller's cache when one
// is running, otherwise straight from the backend
func (h *Handler) ChatMessages(c *gin.Context) {
	if h.Chat != nil {
		c.JSON(http.StatusOK, gin.H{"messages": h.Chat.Messages()})
		return
	}

	msgs, err := h.kitchen(c).ChatMessages(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendChatMessage posts a message as the session's user. The backend
// expects a MySQL datetime and the string flags of the original schema.
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req struct {
		Text string `json:"mensagem_chat" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := h.claims(c)
	msg := models.ChatMessage{
		Text:   req.Text,
		Seen:   "n",
		Date:   time.Now().Format("2006-01-02 15:04:05"),
		UserID: claims.UserID,
	}

	if err := h.kitchen(c).SendChatMessage(c.Request.Context(), msg); err != nil {
		h.respondError(c, err)
		return
	}

	if h.Chat != nil {
		h.Chat.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mensagem enviada"})
}

// ChatContacts lists users for the participants sidebar
func (h *Handler) ChatContacts(c *gin.Context) {
	contacts, err := h.kitchen(c).Contacts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}
