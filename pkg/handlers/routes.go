package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dfarias/merenda-gateway-go/pkg/auth"
)

// RegisterRoutes wires every route group onto the engine. serviceToken
// is the kitchen backend credential kiosk devices ride on; empty
// disables the device-key routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, serviceToken string) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Merenda Gateway",
			"version": "1.0.0",
		})
	})

	r.POST("/login", h.Login)

	// Gateway operator endpoints
	r.POST("/admin/login", h.AdminLogin)
	admin := r.Group("/admin")
	admin.Use(h.AdminMiddleware())
	{
		admin.POST("/keys", h.GenerateDeviceKey)
		admin.GET("/keys", h.ListDeviceKeys)
		admin.PUT("/keys/:id", h.UpdateDeviceKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeDeviceKey)
		admin.GET("/usage/:id", h.GetDeviceUsage)
		admin.GET("/audit", h.ListAudit)
	}

	api := r.Group("/api")
	api.Use(h.SessionMiddleware())
	{
		api.POST("/logout", h.Logout)
		api.GET("/me", h.Me)
		api.GET("/profile", h.Profile)
		api.POST("/reset-password", h.ChangePassword)

		// weekly scheduling board (nutritionist)
		boardGroup := api.Group("/board", h.RequireLevel(auth.LevelNutritionist))
		{
			boardGroup.GET("", h.GetBoard)
			boardGroup.GET("/pool", h.GetPool)
			boardGroup.POST("/drop", h.DropGesture)
			boardGroup.DELETE("/days/:day/relations/:relation", h.RemoveOccurrence)
		}

		// planning and records management (nutritionist)
		manage := api.Group("", h.RequireLevel(auth.LevelNutritionist))
		{
			manage.GET("/needs", h.ListNeeds)
			manage.POST("/needs", h.CreateNeed)
			manage.GET("/needs/:id", h.NeedDetail)
			manage.PUT("/needs/:id", h.UpdateNeed)
			manage.DELETE("/needs/:id", h.DeleteNeed)
			manage.DELETE("/needs/:id/students/:student", h.DissociateStudent)

			manage.GET("/students", h.ListStudents)
			manage.POST("/students", h.CreateStudent)
			manage.PUT("/students/:id", h.UpdateStudent)
			manage.DELETE("/students/:id", h.DeleteStudent)
			manage.POST("/students/:id/needs", h.AssociateNeeds)

			manage.GET("/relations/:id/days", h.RelationDays)
			manage.PUT("/relations/:id/days", h.SyncRelationDays)

			manage.POST("/classes", h.CreateClass)
			manage.PUT("/classes/:id", h.UpdateClass)
			manage.DELETE("/classes/:id", h.DeleteClass)

			manage.GET("/categories", h.ListCategories)
			manage.POST("/categories", h.CreateCategory)
			manage.PUT("/categories/:id", h.UpdateCategory)
			manage.DELETE("/categories/:id", h.DeleteCategory)

			manage.POST("/menus", h.UploadMenu)
			manage.DELETE("/menus/:id", h.DeleteMenu)

			manage.GET("/production", h.ListProduction)
			manage.POST("/production", h.CreateProduction)
			manage.PUT("/production/:id", h.UpdateProduction)
			manage.DELETE("/production/:id", h.DeleteProduction)

			manage.GET("/reports/counts", h.CountsReport)
			manage.GET("/reports/dashboard", h.CountsDashboard)
		}

		// user administration (nutritionist or principal)
		staff := api.Group("/users", h.RequireLevel(auth.LevelNutritionist, auth.LevelPrincipal))
		{
			staff.GET("", h.ListUsers)
			staff.POST("", h.CreateUser)
			staff.PUT("/:id", h.UpdateUser)
			staff.DELETE("/:id", h.DeleteUser)
		}

		// meal counting (inspector)
		counting := api.Group("/counts", h.RequireLevel(auth.LevelInspector, auth.LevelNutritionist))
		{
			counting.GET("/today", h.TodayCounts)
			counting.POST("", h.AddCount)
			counting.PUT("/:id", h.UpdateCount)
			counting.GET("/specials", h.TodaySpecials)
			counting.POST("/specials", h.CheckInSpecial)
			counting.DELETE("/specials/:id", h.CheckOutSpecial)
		}

		api.GET("/classes", h.ListClasses)
		api.GET("/menus", h.ListMenus)
		api.GET("/menus/latest", h.LatestMenu)

		// authorized meal requests (principal files, nutritionist reviews)
		authorized := api.Group("/authorized", h.RequireLevel(auth.LevelNutritionist, auth.LevelPrincipal))
		{
			authorized.GET("", h.ListAuthorized)
			authorized.POST("", h.CreateAuthorized)
			authorized.PUT("/:id", h.UpdateAuthorized)
			authorized.DELETE("/:id", h.DeleteAuthorized)
		}

		api.GET("/chat/messages", h.ChatMessages)
		api.POST("/chat/messages", h.SendChatMessage)
		api.GET("/chat/contacts", h.ChatContacts)
	}

	// kiosk tablets: meal counting with a device key instead of a session
	if serviceToken != "" {
		device := r.Group("/device", h.DeviceKeyMiddleware(serviceToken))
		{
			device.GET("/counts/today", h.TodayCounts)
			device.POST("/counts", h.AddCount)
			device.PUT("/counts/:id", h.UpdateCount)
			device.GET("/counts/specials", h.TodaySpecials)
			device.POST("/counts/specials", h.CheckInSpecial)
			device.DELETE("/counts/specials/:id", h.CheckOutSpecial)
		}
	}
}
