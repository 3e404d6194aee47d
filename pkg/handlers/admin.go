package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dfarias/merenda-gateway-go/pkg/auth"
	"github.com/dfarias/merenda-gateway-go/pkg/database"
)

// AdminLogin handles gateway operator login
func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateAdminToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateDeviceKey creates a new kiosk device key using the HMAC strategy
func (h *Handler) GenerateDeviceKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key := auth.GenerateDeviceKey(req.Name)

	deviceKey := database.DeviceKey{
		Key:       key,
		Name:      req.Name,
		RateLimit: req.RateLimit,
	}

	if err := h.DB.Create(&deviceKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": req.Name,
		"key":  key,
	})
}

// ListDeviceKeys returns all registered device keys
func (h *Handler) ListDeviceKeys(c *gin.Context) {
	var keys []database.DeviceKey
	h.DB.Find(&keys)
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeDeviceKey deletes a device key
func (h *Handler) RevokeDeviceKey(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.DeviceKey{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateDeviceKeyLimit updates the rate limit for a device key
func (h *Handler) UpdateDeviceKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.DeviceKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetDeviceUsage returns usage stats for a device key
func (h *Handler) GetDeviceUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.DeviceUsage
	h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage)
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// ListAudit returns the most recent board reconciliation actions
func (h *Handler) ListAudit(c *gin.Context) {
	var entries []database.AuditEntry
	h.DB.Order("created_at desc").Limit(100).Find(&entries)
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
