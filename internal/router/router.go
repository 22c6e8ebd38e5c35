// Package router assembles the HTTP server.
package router

import (
	"github.com/albretostimbung/naraicoderbe/internal/handler"
	"github.com/albretostimbung/naraicoderbe/internal/middleware"
	"github.com/albretostimbung/naraicoderbe/internal/response"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the echo instance with middleware and every route
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.MetricsMiddleware)
	e.Use(logger.Middleware())

	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public routes
	e.POST("/login", handler.Login)
	e.POST("/register", handler.Register)
	e.GET("/settings", handler.ListSettings)
	e.GET("/partners", handler.ListPartners)
	e.GET("/testimonials/featured", handler.FeaturedTestimonials)

	// Bearer-gated routes
	auth := middleware.AuthMiddleware

	e.GET("/user", handler.CurrentUser, auth)
	e.POST("/logout", handler.Logout, auth)

	events := e.Group("/events", auth)
	events.GET("", handler.ListEvents)
	events.POST("", handler.CreateEvent)
	events.GET("/:id", handler.GetEvent)
	events.PUT("/:id", handler.UpdateEvent)
	events.PATCH("/:id", handler.UpdateEvent)
	events.DELETE("/:id", handler.DeleteEvent)
	events.GET("/:id/registrations", handler.ListEventRegistrationsForEvent)

	registrations := e.Group("/event-registrations", auth)
	registrations.GET("", handler.ListEventRegistrations)
	registrations.POST("", handler.CreateEventRegistration)
	registrations.GET("/:id", handler.GetEventRegistration)
	registrations.PUT("/:id", handler.UpdateEventRegistration)
	registrations.PATCH("/:id", handler.UpdateEventRegistration)
	registrations.DELETE("/:id", handler.DeleteEventRegistration)

	partners := e.Group("/partners", auth)
	partners.POST("", handler.CreatePartner)
	partners.GET("/:id", handler.GetPartner)
	partners.PUT("/:id", handler.UpdatePartner)
	partners.PATCH("/:id", handler.UpdatePartner)
	partners.DELETE("/:id", handler.DeletePartner)

	settings := e.Group("/settings", auth)
	settings.POST("", handler.CreateSetting)
	settings.GET("/:id", handler.GetSetting)
	settings.PUT("/:id", handler.UpdateSetting)
	settings.PATCH("/:id", handler.UpdateSetting)
	settings.DELETE("/:id", handler.DeleteSetting)

	testimonials := e.Group("/testimonials", auth)
	testimonials.GET("", handler.ListTestimonials)
	testimonials.POST("", handler.CreateTestimonial)
	testimonials.GET("/:id", handler.GetTestimonial)
	testimonials.PUT("/:id", handler.UpdateTestimonial)
	testimonials.PATCH("/:id", handler.UpdateTestimonial)
	testimonials.DELETE("/:id", handler.DeleteTestimonial)

	users := e.Group("/users", auth)
	users.GET("", handler.ListUsers)
	users.POST("", handler.CreateUser)
	users.GET("/:id", handler.GetUser)
	users.PUT("/:id", handler.UpdateUser)
	users.PATCH("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)
	users.GET("/:id/registrations", handler.ListUserRegistrations)

	return e
}
