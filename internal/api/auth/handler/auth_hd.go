package authHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"ConciergeGolang/internal/api/auth"
	contextPkg "ConciergeGolang/pkg/context"
	"ConciergeGolang/pkg/handlerUtil"
	jwtPkg "ConciergeGolang/pkg/jwt"
	"ConciergeGolang/pkg/log"
)

func (h *AuthHandler) GuestLogin(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.GuestLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.authService.LoginGuest(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "guest_login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AuthHandler) StaffLogin(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.StaffLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.authService.LoginStaff(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "staff_login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	claims, err := jwtPkg.GetSessionClaims(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.authService.Logout(c, claims.SessionID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "logout")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": claims.SessionID,
	}).Info("Session logged out")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Logged out",
	})
}

func (h *AuthHandler) Verify(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	claims, err := jwtPkg.GetSessionClaims(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	res, err := h.authService.Verify(c, claims.SessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "verify")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *AuthHandler) ListSessions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.authService.ListSessions(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_sessions")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}
