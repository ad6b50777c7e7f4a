package authHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	authService "ConciergeGolang/internal/api/auth/service"
	"ConciergeGolang/internal/middleware"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	authService authService.IAuthService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as authService.IAuthService,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		authService: as,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Use(h.middleware.NewRateLimiter)

	auth.Post("/guest/login", h.GuestLogin)
	auth.Post("/staff/login", h.StaffLogin)

	auth.Post("/logout", h.middleware.NewTokenMiddleware, h.Logout)
	auth.Get("/verify", h.middleware.NewTokenMiddleware, h.Verify)

	// Staff console
	auth.Get("/sessions", h.middleware.NewTokenMiddleware, h.middleware.NewStaffOnlyMiddleware, h.ListSessions)
}
