// Package router contains routing setup for the HTTP delivery.
package router

import (
	"rentease/internal/delivery/http/middleware"
	"rentease/internal/delivery/http/router/handler"
	"rentease/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ListingHandler *handler.ListingHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	listingHandler *handler.ListingHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		listingHandler: params.ListingHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	userGroup := e.Group("/users")
	{
		userGroup.POST("/signup", r.userHandler.Signup)
		userGroup.POST("/login", r.userHandler.Login)
		userGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	postGroup := e.Group("/posts")
	{
		postGroup.GET("", r.listingHandler.ListAll)
		postGroup.GET("/category/:category", r.listingHandler.ListByCategory)
		postGroup.GET("/user/:email", r.listingHandler.ListByEmail)
		postGroup.GET("/:id", r.listingHandler.GetByID)
		postGroup.GET("/:id/qr", r.listingHandler.ShareQR)
		postGroup.POST("", r.listingHandler.Create, r.authMiddleware.Authenticate)
		postGroup.DELETE("/:id", r.listingHandler.Delete, r.authMiddleware.Authenticate)
	}

	// Moderation endpoints require a logged-in admin account.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.DELETE("/user/:id", r.adminHandler.DeleteUser)
	}
}
