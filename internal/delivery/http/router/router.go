// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"mechalung/internal/delivery/http/middleware"
	"mechalung/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DoctorHandler  *handler.DoctorHandler
	PatientHandler *handler.PatientHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	doctorHandler  *handler.DoctorHandler
	patientHandler *handler.PatientHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		doctorHandler:  params.DoctorHandler,
		patientHandler: params.PatientHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Unauthenticated doctor listing, matching the admin tooling surface.
	e.GET("/doctors", r.doctorHandler.List)

	api := e.Group("/api")

	doctorGroup := api.Group("/doctors")
	{
		doctorGroup.POST("/register", r.doctorHandler.Register)
		doctorGroup.POST("/login", r.doctorHandler.Login)
		doctorGroup.GET("/me", r.doctorHandler.Me, r.authMiddleware.Authenticate)
	}

	// Patient routes all require a bearer token; the middleware resolves the
	// owning doctor for every request.
	patientGroup := api.Group("/patients")
	patientGroup.Use(r.authMiddleware.Authenticate)
	{
		patientGroup.POST("", r.patientHandler.Create)
		patientGroup.GET("", r.patientHandler.List)
		patientGroup.GET("/:id", r.patientHandler.Get)
		patientGroup.PUT("/:id", r.patientHandler.Update)
		patientGroup.DELETE("/:id", r.patientHandler.Delete)
	}
}
