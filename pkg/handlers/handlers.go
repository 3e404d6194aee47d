package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dfarias/merenda-gateway-go/pkg/auth"
	"github.com/dfarias/merenda-gateway-go/pkg/chat"
	"github.com/dfarias/merenda-gateway-go/pkg/database"
	"github.com/dfarias/merenda-gateway-go/pkg/kitchen"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Kitchen *kitchen.Client // unauthenticated base; bound per request
	Chat    *chat.Poller    // nil when no service token is configured
	Log     *zap.Logger
}

const (
	ctxClaims  = "claims"
	ctxKitchen = "kitchen"
)

// SessionMiddleware verifies the gateway session token and binds a
// kitchen client carrying the user's upstream token to the request
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifySessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "session_expired"})
			c.Abort()
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxKitchen, h.Kitchen.WithToken(claims.UpstreamToken))
		c.Next()
	}
}

// RequireLevel restricts a route group to the given role levels
func (h *Handler) RequireLevel(levels ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := h.claims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
			c.Abort()
			return
		}
		for _, lvl := range levels {
			if claims.Level == lvl {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
		c.Abort()
	}
}

// AdminMiddleware verifies the gateway operator token for admin routes
func (h *Handler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyAdminToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("admin", claims.Username)
		c.Next()
	}
}

// DeviceKeyMiddleware verifies the HMAC device key kiosk tablets use on
// the counting endpoints, tracking the key in the local store. Requests
// through here reach the backend with the gateway's service token.
func (h *Handler) DeviceKeyMiddleware(serviceToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Device key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		deviceID, err := auth.VerifyDeviceKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid device key signature"})
			c.Abort()
			return
		}

		var deviceKey database.DeviceKey
		h.DB.Where(database.DeviceKey{Key: key}).FirstOrCreate(&deviceKey, database.DeviceKey{
			Key:       key,
			Name:      deviceID,
			RateLimit: 10000,
		})

		c.Set("deviceKey", &deviceKey)
		c.Set(ctxKitchen, h.Kitchen.WithToken(serviceToken))
		c.Next()
	}
}

// RecordDeviceUsage upserts the per-day usage row for the request's device key
func (h *Handler) RecordDeviceUsage(c *gin.Context, counts int) {
	keyRaw, exists := c.Get("deviceKey")
	if !exists {
		return
	}
	deviceKey := keyRaw.(*database.DeviceKey)

	today := time.Now().Format("2006-01-02")

	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"counts_total":  gorm.Expr("counts_total + ?", counts),
		}),
	}).Create(&database.DeviceUsage{
		KeyID:        deviceKey.ID,
		Date:         today,
		RequestCount: 1,
		CountsTotal:  counts,
	})
}

// recordAudit writes one reconciliation action to the local audit trail.
// Failures only log; the audit trail never blocks a board action.
func (h *Handler) recordAudit(c *gin.Context, action string, relationID, sourceDay, destDay int, outcome string) {
	actor := "unknown"
	if claims := h.claims(c); claims != nil {
		actor = claims.Name
	}
	entry := database.AuditEntry{
		Actor:      actor,
		Action:     action,
		RelationID: relationID,
		SourceDay:  sourceDay,
		DestDay:    destDay,
		Outcome:    outcome,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		h.Log.Warn("audit write failed", zap.Error(err))
	}
}

func (h *Handler) claims(c *gin.Context) *auth.SessionClaims {
	raw, exists := c.Get(ctxClaims)
	if !exists {
		return nil
	}
	return raw.(*auth.SessionClaims)
}

func (h *Handler) kitchen(c *gin.Context) *kitchen.Client {
	raw, exists := c.Get(ctxKitchen)
	if !exists {
		return h.Kitchen
	}
	return raw.(*kitchen.Client)
}

// respondError maps kitchen API failures onto the gateway's replies,
// keeping the error taxonomy the frontend distinguishes: expired
// session, duplicate assignment, unsupported route, everything else.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case kitchen.IsSessionExpired(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sessão expirada", "code": "session_expired"})
	case kitchen.IsDuplicateAssignment(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Este aluno já está agendado neste dia.", "code": "already_scheduled"})
	case kitchen.IsUnsupportedOperation(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Rota não suportada no servidor. Verifique o backend.", "code": "config"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": "remote_failure"})
	}
}
