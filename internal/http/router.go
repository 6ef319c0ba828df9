package api

import (
	"log"
	stdhttp "net/http"

	intconfig "drowsiness-dashboard/internal/config"
	h "drowsiness-dashboard/internal/http/handlers"
	"drowsiness-dashboard/internal/http/middleware"
	"drowsiness-dashboard/internal/repositories"
	"drowsiness-dashboard/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Trips repositories.TripRecordRepository
	Auth  services.AuthService
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}
	r.SetHTMLTemplate(h.PageTemplates())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	system := h.SystemHandler{Store: deps.Trips, Routes: r.Routes}
	auth := h.AuthHandler{Auth: deps.Auth, SecureCookie: env.GinMode == gin.ReleaseMode}
	trips := h.TripHandler{Store: deps.Trips}
	requireSession := middleware.RequireSession(deps.Auth)

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)
		api.GET("/routes", system.ListRoutes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/logout", auth.Logout)

		// Trips
		tripsGroup := api.Group("/trips", requireSession)
		tripsGroup.GET("", trips.ListTrips)
		tripsGroup.POST("", trips.CreateTrip)
		tripsGroup.GET("/report.pdf", trips.TripsReportPDF)
	}

	// Browser pages
	r.GET("/", func(c *gin.Context) { c.Redirect(stdhttp.StatusSeeOther, "/trips") })
	r.GET("/login", auth.LoginPage)
	r.POST("/login", auth.LoginSubmit)
	r.POST("/logout", auth.LogoutSubmit)
	r.GET("/trips", middleware.RequirePageSession(deps.Auth, "/login"), trips.TripsPage)

	return r
}
