package authService

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciergeGolang/internal/api/auth"
	"ConciergeGolang/internal/entity"
	"ConciergeGolang/pkg/bcrypt"
	"ConciergeGolang/pkg/redis"
	"ConciergeGolang/pkg/utils"
)

type fakeSessionStore struct {
	sessions map[string]entity.GuestSession
	setErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]entity.GuestSession)}
}

func (f *fakeSessionStore) SetSession(_ context.Context, session entity.GuestSession, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, sessionID string) (entity.GuestSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return entity.GuestSession{}, redis.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, sessionID string) error {
	if _, ok := f.sessions[sessionID]; !ok {
		return redis.ErrSessionNotFound
	}
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionStore) ListSessions(_ context.Context) ([]entity.GuestSession, error) {
	out := make([]entity.GuestSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionStore) IncrIntentCount(_ context.Context, _ string) error {
	return nil
}

func (f *fakeSessionStore) GetIntentCounts(_ context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func newAuthService(store *fakeSessionStore) IAuthService {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(log, store, bcrypt.New(), utils.New())
}

func TestLoginGuestCreatesSession(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	store := newFakeSessionStore()
	svc := newAuthService(store)

	resp, err := svc.LoginGuest(context.Background(), auth.GuestLoginRequest{
		RoomNumber: "101",
		GuestName:  "Ada",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "guest", resp.Persona)

	stored, ok := store.sessions[resp.SessionID]
	require.True(t, ok, "session must be persisted")
	assert.Equal(t, "101", stored.RoomNumber)
	assert.Equal(t, "Ada", stored.GuestName)
	assert.Equal(t, entity.PersonaGuest, stored.Persona)
}

func TestLoginStaff(t *testing.T) {
	hash, err := bcrypt.New().HashPassword("correct-horse-battery")
	require.NoError(t, err)

	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("STAFF_ID", "frontdesk-1")
	t.Setenv("STAFF_PASSWORD_HASH", hash)

	store := newFakeSessionStore()
	svc := newAuthService(store)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.LoginStaff(context.Background(), auth.StaffLoginRequest{
			StaffID:  "frontdesk-1",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "staff", resp.Persona)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.LoginStaff(context.Background(), auth.StaffLoginRequest{
			StaffID:  "frontdesk-1",
			Password: "wrong-password-here",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown staff id", func(t *testing.T) {
		_, err := svc.LoginStaff(context.Background(), auth.StaffLoginRequest{
			StaffID:  "nobody",
			Password: "correct-horse-battery",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestVerifyAndLogout(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	store := newFakeSessionStore()
	svc := newAuthService(store)

	resp, err := svc.LoginGuest(context.Background(), auth.GuestLoginRequest{
		RoomNumber: "202",
		GuestName:  "Grace",
	})
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "202", verified.RoomNumber)

	require.NoError(t, svc.Logout(context.Background(), resp.SessionID))

	_, err = svc.Verify(context.Background(), resp.SessionID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	err = svc.Logout(context.Background(), resp.SessionID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
