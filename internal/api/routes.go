package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the gin engine with recovery, request logging and CORS.
func NewRouter(allowedOrigins []string, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	return router
}

// SetupRoutes registers the public and session-protected API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.POST("/auth/signup", handler.SignUp)
		api.POST("/auth/signin", handler.SignIn)
		api.GET("/season/:month", handler.GetSeason)
	}

	authed := api.Group("")
	authed.Use(handler.RequireSession())
	{
		authed.POST("/auth/signout", handler.SignOut)
		authed.GET("/auth/session", handler.GetSession)

		authed.GET("/dashboard", handler.GetDashboard)
		authed.GET("/dashboard/chart.png", handler.GetConsumptionChart)
		authed.GET("/dashboard/appliances.png", handler.GetApplianceChart)

		authed.GET("/history", handler.GetHistory)
		authed.GET("/history/export.xlsx", handler.ExportHistory)

		authed.GET("/homes", handler.ListHomes)
		authed.POST("/homes", handler.CreateHome)
		authed.GET("/homes/map", handler.GetHomesMap)
		authed.POST("/homes/geocode", handler.GeocodeHomes)
		authed.PUT("/homes/:id", handler.UpdateHome)
		authed.DELETE("/homes/:id", handler.DeleteHome)
		authed.GET("/homes/:id/appliances", handler.ListAppliances)
		authed.POST("/homes/:id/appliances", handler.AddAppliance)
		authed.POST("/homes/:id/consumption", handler.AddConsumption)
		authed.POST("/homes/:id/consumption/import", handler.ImportConsumption)

		authed.POST("/bills/:id/pay", handler.MarkBillPaid)

		authed.POST("/predict", handler.Predict)
	}
}
