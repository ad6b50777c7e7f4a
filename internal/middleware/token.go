package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
	jwtPkg "ConciergeGolang/pkg/jwt"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header is missing",
		}).Warn("Authorization header check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	claims, err := jwtPkg.ClaimsFromToken(token)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": err.Error(),
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	jwtPkg.StoreClaims(ctx, claims)

	return ctx.Next()
}

// NewStaffOnlyMiddleware guards endpoints reserved for hotel staff. Must
// run after NewTokenMiddleware.
func (m *middleware) NewStaffOnlyMiddleware(ctx *fiber.Ctx) error {
	claims, err := jwtPkg.GetSessionClaims(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	if claims.Persona != entity.PersonaStaff {
		m.log.WithFields(logrus.Fields{
			"path":       ctx.Path(),
			"session_id": claims.SessionID,
			"persona":    claims.Persona.String(),
		}).Warn("Non-staff session attempted staff endpoint")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Staff access required",
		})
	}

	return ctx.Next()
}
