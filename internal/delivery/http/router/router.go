// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler            *handler.AuthHandler
	ProviderProfileHandler *handler.ProviderProfileHandler
	AppointmentHandler     *handler.AppointmentHandler
	AuthMiddleware         *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler            *handler.AuthHandler
	providerProfileHandler *handler.ProviderProfileHandler
	appointmentHandler     *handler.AppointmentHandler
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:            params.AuthHandler,
		providerProfileHandler: params.ProviderProfileHandler,
		appointmentHandler:     params.AppointmentHandler,
		authMiddleware:         params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Protected routes authenticate first, then consult the authority table
// through the single RequireAuthority choke point.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/verify-email", r.authHandler.VerifyEmail)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
	}

	// Admin account management
	accountGroup := e.Group("/accounts")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.POST("/:id/promote", r.authHandler.PromoteAccount,
			r.authMiddleware.RequireAuthority(Authority(OpPromoteAccount)))
	}

	// Provider profile routes
	profileGroup := e.Group("/providers/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.POST("", r.providerProfileHandler.CreateProfile,
			r.authMiddleware.RequireAuthority(Authority(OpProviderProfileCreate)))
		profileGroup.GET("", r.providerProfileHandler.GetProfile,
			r.authMiddleware.RequireAuthority(Authority(OpProviderProfileRead)))
		profileGroup.PUT("", r.providerProfileHandler.UpdateProfile,
			r.authMiddleware.RequireAuthority(Authority(OpProviderProfileUpdate)))
		profileGroup.DELETE("", r.providerProfileHandler.DeleteProfile,
			r.authMiddleware.RequireAuthority(Authority(OpProviderProfileDelete)))
	}

	// Appointment routes
	appointmentGroup := e.Group("/appointments")
	appointmentGroup.Use(r.authMiddleware.Authenticate)
	{
		appointmentGroup.POST("", r.appointmentHandler.Book,
			r.authMiddleware.RequireAuthority(Authority(OpAppointmentBook)))
		appointmentGroup.GET("/mine", r.appointmentHandler.ListMine,
			r.authMiddleware.RequireAuthority(Authority(OpAppointmentListOwn)))
		appointmentGroup.GET("", r.appointmentHandler.ListAll,
			r.authMiddleware.RequireAuthority(Authority(OpAppointmentListAll)))
		appointmentGroup.GET("/:id", r.appointmentHandler.Get,
			r.authMiddleware.RequireAuthority(Authority(OpAppointmentRead)))
		appointmentGroup.PATCH("/:id/status", r.appointmentHandler.UpdateStatus,
			r.authMiddleware.RequireAuthority(Authority(OpAppointmentUpdate)))
		appointmentGroup.DELETE("/:id", r.appointmentHandler.Cancel,
			r.authMiddleware.RequireAuthority(Authority(OpAppointmentCancel)))
	}
}
