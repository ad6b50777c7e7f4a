package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
)

const sessionClaimsKey = "session_claims"

func Sign(data map[string]interface{}, expiresIn time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	secret := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if secret == "" {
		return "", 0, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET not set")
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	claims["authorization"] = true

	for k, v := range data {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, errors.New("empty Authorization header")
	}

	parts := strings.Split(header, "Bearer ")
	if len(parts) != 2 {
		return nil, errors.New("invalid Authorization format")
	}

	accessToken := strings.TrimSpace(parts[1])
	if accessToken == "" {
		return nil, errors.New("empty token")
	}

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return nil, errors.New("token secret not configured")
	}

	token, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}

// SessionClaims is the identity carried inside an access token.
type SessionClaims struct {
	SessionID  string
	Persona    entity.Persona
	RoomNumber string
	GuestName  string
	StaffID    string
}

func ClaimsFromToken(token *jwt.Token) (SessionClaims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, errors.New("unexpected claims type")
	}

	sessionID, _ := mapClaims["session_id"].(string)
	if sessionID == "" {
		return SessionClaims{}, errors.New("token has no session id")
	}

	persona, _ := mapClaims["persona"].(string)
	roomNumber, _ := mapClaims["room_number"].(string)
	guestName, _ := mapClaims["guest_name"].(string)
	staffID, _ := mapClaims["staff_id"].(string)

	return SessionClaims{
		SessionID:  sessionID,
		Persona:    entity.ParsePersona(persona),
		RoomNumber: roomNumber,
		GuestName:  guestName,
		StaffID:    staffID,
	}, nil
}

// StoreClaims stashes verified claims on the request so handlers can read
// them without re-parsing the token.
func StoreClaims(c *fiber.Ctx, claims SessionClaims) {
	c.Locals(sessionClaimsKey, claims)
}

func GetSessionClaims(c *fiber.Ctx) (SessionClaims, error) {
	claims, ok := c.Locals(sessionClaimsKey).(SessionClaims)
	if !ok || claims.SessionID == "" {
		return SessionClaims{}, errors.New("no session claims on request")
	}
	return claims, nil
}
