package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/health-insights-go/internal/handler"
	"github.com/jengzang/health-insights-go/internal/middleware"
	"github.com/jengzang/health-insights-go/internal/service"
)

// Deps are the services the router exposes
type Deps struct {
	Dashboard   *service.DashboardService
	Sessions    *service.SessionService
	RateLimiter *middleware.RateLimiter
}

// SetupRouter builds the gin engine with every route
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Health insights API is running",
		})
	})

	api := r.Group("/api/v1")
	if deps.RateLimiter != nil {
		api.Use(middleware.RateLimit(deps.RateLimiter))
	}

	dashboard := handler.NewDashboardHandler(deps.Dashboard)
	{
		api.GET("/options", dashboard.GetOptions)

		districts := api.Group("/districts")
		{
			districts.GET("", dashboard.ListDistricts)
			districts.GET("/locate", dashboard.LocateDistrict)
			districts.GET("/:name", dashboard.GetDistrict)
		}

		api.GET("/facilities", dashboard.ListFacilities)

		screening := api.Group("/screening")
		{
			screening.GET("/eligible", dashboard.ListEligible)
			screening.GET("/participation", dashboard.ListParticipation)
		}

		hotspots := api.Group("/hotspots")
		{
			hotspots.GET("", dashboard.ListHotspots)
			hotspots.GET("/:id", dashboard.GetHotspot)
		}

		api.GET("/demographics", dashboard.GetDemographics)
		api.GET("/campaigns", dashboard.ListCampaigns)
		api.GET("/bmi/heatmap", dashboard.GetHeatmap)
	}

	sessions := handler.NewSessionHandler(deps.Sessions)
	api.POST("/sessions", sessions.CreateSession)

	session := api.Group("/session", middleware.SessionAuth(deps.Sessions))
	{
		session.GET("", sessions.GetSnapshot)
		session.DELETE("", sessions.CloseSession)
		session.PUT("/view", sessions.SwitchView)
		session.POST("/events", sessions.PostEvent)
		session.GET("/charts/:id", sessions.GetChart)
	}

	return r
}
