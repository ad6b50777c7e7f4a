package conciergeService

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/api/concierge"
	contextPkg "ConciergeGolang/pkg/context"
	"ConciergeGolang/pkg/events"
	"ConciergeGolang/pkg/weather"
)

// RequestHandoff notifies hotel staff that a guest wants a human. WhatsApp
// is the primary channel, email the backup; the handoff only fails when
// neither channel goes through.
func (s *conciergeService) RequestHandoff(ctx context.Context, req concierge.HandoffRequest) (*concierge.HandoffResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "guest requested assistance"
	}

	notice := fmt.Sprintf("Concierge handoff for session %s: %s", req.SessionID, reason)

	var notified bool

	if s.whatsappClient != nil && s.whatsappClient.IsConnected() {
		staffNumber := os.Getenv("STAFF_WHATSAPP_NUMBER")
		if staffNumber != "" {
			if err := s.whatsappClient.SendMessage(ctx, staffNumber, notice); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("WhatsApp handoff notice failed, falling back to email")
			} else {
				notified = true
			}
		}
	}

	if !notified && s.smtpMailer != nil {
		staffEmail := os.Getenv("STAFF_EMAIL")
		if staffEmail != "" {
			if err := s.smtpMailer.SendHandoffNotice(staffEmail, req.SessionID, reason); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Error("Email handoff notice failed")
			} else {
				notified = true
			}
		}
	}

	if !notified {
		return nil, concierge.ErrHandoffFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": req.SessionID,
	}).Info("Hotel staff notified of handoff request")

	return &concierge.HandoffResponse{
		Notified: true,
		Message:  "Hotel staff have been notified and will reach out shortly.",
	}, nil
}

// AskAgent forwards a free-form guest question to the generative agent.
func (s *conciergeService) AskAgent(ctx context.Context, req concierge.AgentRequest) (*concierge.AgentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.geminiClient == nil {
		return nil, concierge.ErrAgentUnavailable
	}

	reply, err := s.geminiClient.AnswerGuest(ctx, s.hotelName, req.Message)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": req.SessionID,
			"error":      err.Error(),
		}).Error("Generative agent request failed")
		return nil, concierge.ErrAgentUnavailable
	}

	return &concierge.AgentResponse{Reply: reply}, nil
}

func (s *conciergeService) GetAnalytics(ctx context.Context) (*concierge.AnalyticsResponse, error) {
	if s.redisServer == nil {
		return &concierge.AnalyticsResponse{IntentCounts: map[string]int64{}}, nil
	}

	counts, err := s.redisServer.GetIntentCounts(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to read intent counters")
		return nil, err
	}

	return &concierge.AnalyticsResponse{IntentCounts: counts}, nil
}

func (s *conciergeService) GetHistory(ctx context.Context, sessionID string, limit int) (*concierge.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.conciergeRepo == nil {
		return nil, concierge.ErrHistoryUnavailable
	}

	repo, err := s.conciergeRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client for history")
		return nil, concierge.ErrHistoryUnavailable
	}

	turns, err := repo.Conversations.GetBySessionID(ctx, sessionID, limit)
	if err != nil {
		return nil, concierge.ErrHistoryUnavailable
	}

	return &concierge.HistoryResponse{
		SessionID: sessionID,
		Turns:     turns,
	}, nil
}

// PruneHistory drops conversation turns persisted before the retention
// window. Best-effort like the rest of the history log; callers only log
// failures.
func (s *conciergeService) PruneHistory(ctx context.Context, retention time.Duration) error {
	if s.conciergeRepo == nil {
		return nil
	}

	repo, err := s.conciergeRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Conversations.DeleteOlderThan(ctx, time.Now().Add(-retention))
}

func (s *conciergeService) CurrentWeather(ctx context.Context, lat, lon float64) (*weather.Conditions, error) {
	if s.weatherClient == nil {
		return nil, fmt.Errorf("weather service is not configured")
	}
	return s.weatherClient.Current(ctx, lat, lon)
}

func (s *conciergeService) FindEvents(ctx context.Context, city, keyword string) ([]events.Event, error) {
	if s.eventsClient == nil {
		return nil, fmt.Errorf("events service is not configured")
	}
	return s.eventsClient.Search(ctx, city, keyword)
}
