package authService

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/api/auth"
	"ConciergeGolang/internal/entity"
	contextPkg "ConciergeGolang/pkg/context"
	jwtPkg "ConciergeGolang/pkg/jwt"
	"ConciergeGolang/pkg/redis"
)

func sessionTTL() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// LoginGuest issues a session for a guest identified by room number and
// name. There is no password: the front desk hands the room credentials to
// the guest at check-in.
func (s *authService) LoginGuest(ctx context.Context, req auth.GuestLoginRequest) (*auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session id")
		return nil, err
	}

	ttl := sessionTTL()
	session := entity.GuestSession{
		ID:         sessionID,
		Persona:    entity.PersonaGuest,
		RoomNumber: req.RoomNumber,
		GuestName:  req.GuestName,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}

	if err := s.redisServer.SetSession(ctx, session, ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store guest session")
		return nil, auth.ErrSessionStoreDown
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"session_id":  session.ID,
		"persona":     session.Persona.String(),
		"room_number": session.RoomNumber,
		"guest_name":  session.GuestName,
	}, ttl)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
	}).Info("Guest session created")

	return &auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		SessionID:   session.ID,
		Persona:     session.Persona.String(),
	}, nil
}

// LoginStaff checks the supplied credentials against the configured staff
// account and issues a staff session.
func (s *authService) LoginStaff(ctx context.Context, req auth.StaffLoginRequest) (*auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	configuredID := os.Getenv("STAFF_ID")
	passwordHash := os.Getenv("STAFF_PASSWORD_HASH")
	if configuredID == "" || passwordHash == "" || req.StaffID != configuredID {
		return nil, auth.ErrInvalidCredentials
	}

	if err := s.bcryptUtils.ComparePassword(passwordHash, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"staff_id":   req.StaffID,
		}).Warn("Staff password mismatch")
		return nil, auth.ErrInvalidCredentials
	}

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	ttl := sessionTTL()
	session := entity.GuestSession{
		ID:        sessionID,
		Persona:   entity.PersonaStaff,
		StaffID:   req.StaffID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.redisServer.SetSession(ctx, session, ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store staff session")
		return nil, auth.ErrSessionStoreDown
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"session_id": session.ID,
		"persona":    session.Persona.String(),
		"staff_id":   session.StaffID,
	}, ttl)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"staff_id":   req.StaffID,
	}).Info("Staff session created")

	return &auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		SessionID:   session.ID,
		Persona:     session.Persona.String(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.redisServer.DeleteSession(ctx, sessionID); err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return auth.ErrSessionNotFound
		}
		return err
	}
	return nil
}

func (s *authService) Verify(ctx context.Context, sessionID string) (*auth.VerifyResponse, error) {
	session, err := s.redisServer.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}

	return &auth.VerifyResponse{
		SessionID:  session.ID,
		Persona:    session.Persona.String(),
		RoomNumber: session.RoomNumber,
		GuestName:  session.GuestName,
		StaffID:    session.StaffID,
	}, nil
}

func (s *authService) ListSessions(ctx context.Context) (*auth.SessionsResponse, error) {
	sessions, err := s.redisServer.ListSessions(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to list sessions")
		return nil, err
	}

	return &auth.SessionsResponse{Sessions: sessions}, nil
}
