package controllers

import (
	"github.com/Jfdeev/reflora/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every route of the API.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "ADMIN_SECRET"},
		AllowCredentials: true,
	}))
	r.Use(middlewares.RequestTimeout(h.cfg.RequestTimeout))

	// Public routes
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/webhook/sensors/data", h.ReceiveWebhookData)
	r.POST("/admin/sensors", middlewares.AdminSecret(h.cfg.AdminSecret), h.ProvisionSensor)

	// Protected routes using auth middleware
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware([]byte(h.cfg.JWTSecret)))

	auth.PUT("/user", h.UpdateUser)
	auth.DELETE("/user", h.DeleteUser)

	auth.POST("/sensors", h.CreateSensor)
	auth.GET("/sensors", h.ListSensors)
	auth.GET("/sensors/:id", h.GetSensor)
	auth.PUT("/sensors/:id", h.UpdateSensor)
	auth.DELETE("/sensors/:id", h.DeleteSensor)
	auth.PATCH("/sensors/:id/assign", h.ClaimSensor)

	auth.POST("/sensors/:id/data", h.CreateReading)
	auth.GET("/sensors/:id/data", h.ListReadings)
	auth.GET("/sensors/:id/data/:dataId", h.GetReading)
	auth.PUT("/sensors/:id/data/:dataId", h.UpdateReading)
	auth.DELETE("/sensors/:id/data/:dataId", h.DeleteReading)

	auth.POST("/sensors/:id/alert", h.CreateAlert)
	auth.GET("/sensor/:id/alerts", h.ListAlerts)
	auth.GET("/sensors/:id/alerts/:alertId", h.GetAlert)
	auth.PUT("/alert/:alertId", h.UpdateAlert)
	auth.DELETE("/alert/:alertId", h.DeleteAlert)

	return r
}
