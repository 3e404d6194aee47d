package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dfarias/merenda-gateway-go/pkg/auth"
	"github.com/dfarias/merenda-gateway-go/pkg/kitchen"
)

// Login proxies credentials to the kitchen backend and mints a gateway
// session embedding the upstream token and the user's role level
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		NIF      string `json:"nif" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upstreamToken, err := h.Kitchen.Login(c.Request.Context(), req.NIF, req.Password)
	if err != nil {
		// a 401 on /login is bad credentials, not an expired session
		if kitchen.IsSessionExpired(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
			return
		}
		h.respondError(c, err)
		return
	}

	user, err := h.Kitchen.WithToken(upstreamToken).CurrentUser(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := auth.CreateSessionToken(user.ID, user.Name, user.Level, upstreamToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"nivel_user": user.Level,
		},
	})
}

// Logout invalidates the upstream token; the gateway session simply
// expires, it holds no server-side state
func (h *Handler) Logout(c *gin.Context) {
	if err := h.kitchen(c).Logout(c.Request.Context()); err != nil {
		// best effort; the client clears its session either way
		h.Log.Warn("upstream logout failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}

// Me returns the session's identity
func (h *Handler) Me(c *gin.Context) {
	claims := h.claims(c)
	c.JSON(http.StatusOK, gin.H{
		"id":         claims.UserID,
		"name":       claims.Name,
		"nivel_user": claims.Level,
	})
}

// Profile returns the live profile from the kitchen backend
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.kitchen(c).CurrentUser(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword proxies a password reset for the session's user
func (h *Handler) ChangePassword(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.kitchen(c).ChangePassword(c.Request.Context(), body); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Senha atualizada"})
}
