// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shophere/internal/delivery/http/middleware"
	"shophere/internal/delivery/http/router/handler"
	"shophere/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/signin", r.accountHandler.SignIn)
		authGroup.GET("/email-exists", r.accountHandler.EmailExists)
	}

	// Account routes that require authentication
	accountGroup := e.Group("/accounts")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/me", r.accountHandler.Me)
		accountGroup.PUT("/me/password", r.accountHandler.ChangePassword)
		accountGroup.PUT("/me/profile", r.accountHandler.UpdateProfile)
	}

	// Administrative routes restricted to the owner role
	ownerGroup := accountGroup.Group("")
	ownerGroup.Use(r.authMiddleware.RequireRole(entity.RoleOwner))
	{
		ownerGroup.PUT("/promote/:email", r.accountHandler.Promote)
		ownerGroup.DELETE("/:id", r.accountHandler.Delete)
	}
}
