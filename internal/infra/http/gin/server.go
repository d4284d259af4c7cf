package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/dev-master21/nova-site-sub000/internal/infra/config"
	"github.com/dev-master21/nova-site-sub000/internal/infra/obs"
)

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	FindSlots(c *gin.Context)
	CheckPeriod(c *gin.Context)
	Alternatives(c *gin.Context)
	Price(c *gin.Context)
}

type AdminHTTP interface {
	ListBookings(c *gin.Context)
	ListBlockedDates(c *gin.Context)
	CreateBlockedDate(c *gin.Context)
	DeleteBlockedDate(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Admin        AdminHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/properties/:id/availability/calendar", h.Availability.Calendar)
		api.POST("/properties/:id/availability/slots", h.Availability.FindSlots)
		api.POST("/properties/:id/availability/check", h.Availability.CheckPeriod)
		api.POST("/properties/:id/availability/alternatives", h.Availability.Alternatives)
		api.POST("/properties/:id/price", h.Availability.Price)
	}
	if h.Admin != nil {
		admin := api.Group("/admin/properties/:id")
		admin.GET("/bookings", h.Admin.ListBookings)
		admin.GET("/blocked-dates", h.Admin.ListBlockedDates)
		admin.POST("/blocked-dates", h.Admin.CreateBlockedDate)
		admin.DELETE("/blocked-dates/:date", h.Admin.DeleteBlockedDate)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
