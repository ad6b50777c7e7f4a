package conciergeHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	conciergeService "ConciergeGolang/internal/api/concierge/service"
	"ConciergeGolang/internal/middleware"
)

type ConciergeHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	conciergeService conciergeService.IConciergeService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs conciergeService.IConciergeService,
) *ConciergeHandler {
	return &ConciergeHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		conciergeService: cs,
	}
}

func (h *ConciergeHandler) Start(srv fiber.Router) {
	concierge := srv.Group("/concierge")
	concierge.Use(h.middleware.NewRateLimiter)

	// Chat surface, session token required
	concierge.Post("/message", h.middleware.NewTokenMiddleware, h.HandleMessage)
	concierge.Post("/handoff", h.middleware.NewTokenMiddleware, h.RequestHandoff)
	concierge.Post("/agent", h.middleware.NewTokenMiddleware, h.AskAgent)

	// Live data helpers
	concierge.Get("/weather", h.CurrentWeather)
	concierge.Get("/events", h.FindEvents)

	concierge.Get("/history/:session_id", h.middleware.NewTokenMiddleware, h.GetHistory)
	concierge.Get("/analytics", h.middleware.NewTokenMiddleware, h.middleware.NewStaffOnlyMiddleware, h.GetAnalytics)

	// Websocket chat stream
	concierge.Use("/ws", h.middleware.NewTokenMiddleware, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	concierge.Get("/ws", websocket.New(h.ChatStream))
}
