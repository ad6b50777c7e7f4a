package conciergeHandler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"ConciergeGolang/internal/api/concierge"
	"ConciergeGolang/pkg/events"
	"ConciergeGolang/pkg/weather"
)

type stubMiddleware struct{}

func (stubMiddleware) NewRateLimiter(ctx *fiber.Ctx) error { return ctx.Next() }

func (stubMiddleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	return ctx.Next()
}

func (stubMiddleware) NewStaffOnlyMiddleware(ctx *fiber.Ctx) error { return ctx.Next() }

func (stubMiddleware) NewRequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error { return ctx.Next() }
}

func (stubMiddleware) GetRequestID(_ *fiber.Ctx) string { return "test-request" }

type stubConciergeService struct {
	handled int
}

func (s *stubConciergeService) HandleMessage(_ context.Context, _ concierge.MessageRequest) (*concierge.MessageResponse, error) {
	s.handled++
	return &concierge.MessageResponse{Reply: "ok", Intent: "greet"}, nil
}

func (s *stubConciergeService) RequestHandoff(_ context.Context, _ concierge.HandoffRequest) (*concierge.HandoffResponse, error) {
	return &concierge.HandoffResponse{Notified: true}, nil
}

func (s *stubConciergeService) AskAgent(_ context.Context, _ concierge.AgentRequest) (*concierge.AgentResponse, error) {
	return &concierge.AgentResponse{Reply: "ok"}, nil
}

func (s *stubConciergeService) GetAnalytics(_ context.Context) (*concierge.AnalyticsResponse, error) {
	return &concierge.AnalyticsResponse{IntentCounts: map[string]int64{}}, nil
}

func (s *stubConciergeService) GetHistory(_ context.Context, sessionID string, _ int) (*concierge.HistoryResponse, error) {
	return &concierge.HistoryResponse{SessionID: sessionID}, nil
}

func (s *stubConciergeService) PruneHistory(_ context.Context, _ time.Duration) error {
	return nil
}

func (s *stubConciergeService) CurrentWeather(_ context.Context, _, _ float64) (*weather.Conditions, error) {
	return &weather.Conditions{}, nil
}

func (s *stubConciergeService) FindEvents(_ context.Context, _, _ string) ([]events.Event, error) {
	return nil, nil
}

func newTestApp(svc *stubConciergeService) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	h := New(log, validator.New(validator.WithRequiredStructEnabled()), stubMiddleware{}, svc)
	h.Start(app.Group("/api/v1"))

	return app
}

func TestChatRoutesRequireSessionToken(t *testing.T) {
	svc := &stubConciergeService{}
	app := newTestApp(svc)

	routes := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/api/v1/concierge/message"},
		{fiber.MethodPost, "/api/v1/concierge/handoff"},
		{fiber.MethodPost, "/api/v1/concierge/agent"},
		{fiber.MethodGet, "/api/v1/concierge/ws"},
		{fiber.MethodGet, "/api/v1/concierge/history/s1"},
		{fiber.MethodGet, "/api/v1/concierge/analytics"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}

	assert.Zero(t, svc.handled, "no unauthenticated request may reach the dispatcher")
}

func TestHandleMessageWithSessionToken(t *testing.T) {
	svc := &stubConciergeService{}
	app := newTestApp(svc)

	body := `{"session_id":"s1","message":"hello"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/concierge/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, svc.handled)
}

func TestChatStreamRejectsPlainRequests(t *testing.T) {
	app := newTestApp(&stubConciergeService{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/concierge/ws", nil)
	req.Header.Set("Authorization", "Bearer token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
