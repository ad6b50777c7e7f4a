package conciergeHandler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"ConciergeGolang/internal/api/concierge"
	contextPkg "ConciergeGolang/pkg/context"
	"ConciergeGolang/pkg/handlerUtil"
	"ConciergeGolang/pkg/log"
)

func (h *ConciergeHandler) HandleMessage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req concierge.MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if strings.TrimSpace(req.Message) == "" {
		return errHandler.Handle(ctx, requestID, concierge.ErrEmptyMessage, ctx.Path(), "handle_message")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": req.SessionID,
	}).Debug("Processing concierge message")

	res, err := h.conciergeService.HandleMessage(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "handle_message")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ConciergeHandler) RequestHandoff(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req concierge.HandoffRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.conciergeService.RequestHandoff(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "request_handoff")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *ConciergeHandler) AskAgent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req concierge.AgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.conciergeService.AskAgent(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "ask_agent")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ConciergeHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, concierge.ErrSessionRequired, ctx.Path(), "get_history")
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	res, err := h.conciergeService.GetHistory(c, sessionID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *ConciergeHandler) GetAnalytics(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.conciergeService.GetAnalytics(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_analytics")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *ConciergeHandler) CurrentWeather(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	lat, latErr := strconv.ParseFloat(ctx.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(ctx.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required"), ctx.Path())
	}

	res, err := h.conciergeService.CurrentWeather(c, lat, lon)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "current_weather")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *ConciergeHandler) FindEvents(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	city := ctx.Query("city")
	if city == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			fiber.NewError(fiber.StatusBadRequest, "city query parameter is required"), ctx.Path())
	}

	res, err := h.conciergeService.FindEvents(c, city, ctx.Query("keyword"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "find_events")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"city":   city,
		"events": res,
	})
}
