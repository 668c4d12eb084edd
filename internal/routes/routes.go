package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vetcard/internal/config"
	"github.com/BruksfildServices01/vetcard/internal/handlers"
	"github.com/BruksfildServices01/vetcard/internal/middleware"
	"github.com/BruksfildServices01/vetcard/internal/usecase/booking"
)

type Deps struct {
	Config    *config.Config
	Directory handlers.ClinicDirectory
	Workflow  *booking.Workflow
	Visitors  handlers.VisitorStores
	Events    booking.EventSink
	Location  *time.Location
	Logger    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	clinicHandler := handlers.NewClinicHandler(d.Directory, d.Workflow, d.Visitors)
	bookingHandler := handlers.NewBookingHandler(d.Workflow, d.Visitors, d.Location, d.Config.Locale)
	myAppointmentsHandler := handlers.NewMyAppointmentsHandler(d.Visitors, d.Events, d.Location, d.Config.Locale)
	profileHandler := handlers.NewProfileHandler(d.Visitors, d.Events)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.VisitorMiddleware(middleware.VisitorConfig{
		Secret: d.Config.JWTSecret,
		TTL:    d.Config.VisitorTTL,
		Secure: !d.Config.IsDevelopment(),
		Logger: d.Logger,
	}))
	{
		// ------------------------------
		// CLINICS
		// ------------------------------
		api.GET("/clinics", clinicHandler.List)
		api.GET("/clinics/:slug", clinicHandler.Profile)
		api.GET("/clinics/:slug/booking", clinicHandler.BookingForm)
		api.POST("/clinics/:slug/appointments", bookingHandler.Create)

		// ------------------------------
		// VISITOR
		// ------------------------------
		api.GET("/me/appointments", myAppointmentsHandler.List)
		api.DELETE("/me/appointments/:id", myAppointmentsHandler.Delete)

		api.GET("/me/profile", profileHandler.Get)
		api.PUT("/me/profile", profileHandler.Update)
		api.DELETE("/me/profile", profileHandler.Delete)
	}
}
