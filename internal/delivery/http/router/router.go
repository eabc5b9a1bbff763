// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lamsa/internal/delivery/http/middleware"
	"lamsa/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	SalonHandler     *handler.SalonHandler
	ServiceHandler   *handler.ServiceHandler
	BookingHandler   *handler.BookingHandler
	ReviewHandler    *handler.ReviewHandler
	PromotionHandler *handler.PromotionHandler
	SearchHandler    *handler.SearchHandler
	AnalyticsHandler *handler.AnalyticsHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
// Every route lives under the /api prefix.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	authed := r.params.AuthMiddleware.Authenticate

	api.GET("/health", handler.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
		authGroup.GET("/session", r.params.AuthHandler.Session, authed)
		authGroup.POST("/logout", r.params.AuthHandler.Logout, authed)
	}

	salonGroup := api.Group("/salons")
	{
		salonGroup.GET("", r.params.SalonHandler.List)
		salonGroup.GET("/owner", r.params.SalonHandler.OwnerSalons, authed)
		salonGroup.POST("/image", r.params.SalonHandler.UploadImage, authed)
		salonGroup.GET("/:id", r.params.SalonHandler.Get)
		salonGroup.POST("", r.params.SalonHandler.Create, authed)
		salonGroup.PATCH("/:id", r.params.SalonHandler.Update, authed)
	}

	serviceGroup := api.Group("/services")
	{
		serviceGroup.GET("", r.params.ServiceHandler.List)
		serviceGroup.GET("/salon", r.params.ServiceHandler.OwnerServices, authed)
		serviceGroup.GET("/salon/:salonId", r.params.ServiceHandler.BySalon)
		serviceGroup.POST("", r.params.ServiceHandler.Create, authed)
		serviceGroup.PATCH("/:id", r.params.ServiceHandler.Update, authed)
		serviceGroup.DELETE("/:id", r.params.ServiceHandler.Delete, authed)
	}

	bookingGroup := api.Group("/bookings")
	bookingGroup.Use(authed)
	{
		bookingGroup.POST("", r.params.BookingHandler.Create)
		bookingGroup.GET("/salon", r.params.BookingHandler.OwnerBookings)
		bookingGroup.GET("/user/:userId", r.params.BookingHandler.ByUser)
		bookingGroup.PATCH("/:id", r.params.BookingHandler.UpdateStatus)
	}

	reviewGroup := api.Group("/reviews")
	{
		reviewGroup.GET("", r.params.ReviewHandler.List)
		reviewGroup.POST("", r.params.ReviewHandler.Create, authed)
	}

	promotionGroup := api.Group("/promotions")
	{
		promotionGroup.GET("/salon/:salonId", r.params.PromotionHandler.BySalon)
		promotionGroup.POST("", r.params.PromotionHandler.Create, authed)
		promotionGroup.PATCH("/:id", r.params.PromotionHandler.Update, authed)
		promotionGroup.DELETE("/:id", r.params.PromotionHandler.Delete, authed)
	}

	api.GET("/search", r.params.SearchHandler.Search)
	api.GET("/analytics/salon", r.params.AnalyticsHandler.OwnerAnalytics, authed)
}
