package conciergeService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciergeGolang/internal/api/concierge"
	conciergeRepository "ConciergeGolang/internal/api/concierge/repository"
	"ConciergeGolang/internal/entity"
	"ConciergeGolang/pkg/gemini"
	"ConciergeGolang/pkg/smtp"
	"ConciergeGolang/pkg/utils"
)

type fakeMailer struct {
	sentTo     string
	sentReason string
	err        error
}

func (f *fakeMailer) SendHandoffNotice(staffEmail, sessionID, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = staffEmail
	f.sentReason = reason
	return nil
}

type fakeAgent struct {
	reply string
	err   error
}

func (f *fakeAgent) AnswerGuest(_ context.Context, _ string, _ string) (string, error) {
	return f.reply, f.err
}

// typed-nil fakes must become untyped nils before they reach the service,
// otherwise the nil checks inside the operations see a non-nil interface
func agentOrNil(a *fakeAgent) gemini.IGemini {
	if a == nil {
		return nil
	}
	return a
}

func mailerOrNil(m *fakeMailer) smtp.ItfSmtp {
	if m == nil {
		return nil
	}
	return m
}

func newOpsService(mailer *fakeMailer, agent *fakeAgent) IConciergeService {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(log, testCorpus(), NewSessionGuard(), &fakePlaces{}, nil, nil, agentOrNil(agent), nil, mailerOrNil(mailer), nil, nil, utils.New(), "Test Hotel")
}

func TestRequestHandoffViaEmail(t *testing.T) {
	t.Setenv("STAFF_EMAIL", "frontdesk@example.com")

	mailer := &fakeMailer{}
	svc := newOpsService(mailer, nil)

	resp, err := svc.RequestHandoff(context.Background(), concierge.HandoffRequest{
		SessionID: "s1",
		Reason:    "guest asked for a human",
	})
	require.NoError(t, err)

	assert.True(t, resp.Notified)
	assert.Equal(t, "frontdesk@example.com", mailer.sentTo)
	assert.Equal(t, "guest asked for a human", mailer.sentReason)
}

func TestRequestHandoffDefaultsReason(t *testing.T) {
	t.Setenv("STAFF_EMAIL", "frontdesk@example.com")

	mailer := &fakeMailer{}
	svc := newOpsService(mailer, nil)

	_, err := svc.RequestHandoff(context.Background(), concierge.HandoffRequest{SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "guest requested assistance", mailer.sentReason)
}

func TestRequestHandoffFailsWithoutChannels(t *testing.T) {
	t.Setenv("STAFF_EMAIL", "")

	svc := newOpsService(nil, nil)

	_, err := svc.RequestHandoff(context.Background(), concierge.HandoffRequest{SessionID: "s1"})
	assert.ErrorIs(t, err, concierge.ErrHandoffFailed)
}

func TestAskAgent(t *testing.T) {
	svc := newOpsService(nil, &fakeAgent{reply: "The spa opens at 8 AM."})

	resp, err := svc.AskAgent(context.Background(), concierge.AgentRequest{
		SessionID: "s1",
		Message:   "when does the spa open?",
	})
	require.NoError(t, err)
	assert.Equal(t, "The spa opens at 8 AM.", resp.Reply)
}

func TestAskAgentUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		agent *fakeAgent
	}{
		{name: "no agent configured", agent: nil},
		{name: "agent errors", agent: &fakeAgent{err: errors.New("quota exhausted")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newOpsService(nil, tt.agent)

			_, err := svc.AskAgent(context.Background(), concierge.AgentRequest{
				SessionID: "s1",
				Message:   "hello?",
			})
			assert.ErrorIs(t, err, concierge.ErrAgentUnavailable)
		})
	}
}

func TestGetAnalyticsWithoutRedis(t *testing.T) {
	svc := newOpsService(nil, nil)

	resp, err := svc.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.IntentCounts)
}

func TestGetHistoryWithoutDatabase(t *testing.T) {
	svc := newOpsService(nil, nil)

	_, err := svc.GetHistory(context.Background(), "s1", 20)
	assert.ErrorIs(t, err, concierge.ErrHistoryUnavailable)
}

type fakeConversations struct {
	cutoff    time.Time
	deleteErr error
}

func (f *fakeConversations) Insert(_ context.Context, _ entity.ConversationTurn) error {
	return nil
}

func (f *fakeConversations) GetBySessionID(_ context.Context, _ string, _ int) ([]entity.ConversationTurn, error) {
	return nil, nil
}

func (f *fakeConversations) DeleteOlderThan(_ context.Context, cutoff time.Time) error {
	f.cutoff = cutoff
	return f.deleteErr
}

type fakeRepository struct {
	conversations *fakeConversations
}

func (f *fakeRepository) NewClient(_ bool) (conciergeRepository.Client, error) {
	return conciergeRepository.Client{
		Conversations: f.conversations,
		Commit:        func() error { return nil },
		Rollback:      func() error { return nil },
	}, nil
}

func newRetentionService(conversations *fakeConversations) IConciergeService {
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := &fakeRepository{conversations: conversations}
	return New(log, testCorpus(), NewSessionGuard(), &fakePlaces{}, repo, nil, nil, nil, nil, nil, nil, utils.New(), "Test Hotel")
}

func TestPruneHistoryDeletesBeforeRetentionWindow(t *testing.T) {
	conversations := &fakeConversations{}
	svc := newRetentionService(conversations)

	retention := 30 * 24 * time.Hour
	require.NoError(t, svc.PruneHistory(context.Background(), retention))

	assert.False(t, conversations.cutoff.IsZero())
	assert.WithinDuration(t, time.Now().Add(-retention), conversations.cutoff, time.Minute)
}

func TestPruneHistoryPropagatesError(t *testing.T) {
	conversations := &fakeConversations{deleteErr: errors.New("connection reset")}
	svc := newRetentionService(conversations)

	assert.Error(t, svc.PruneHistory(context.Background(), 24*time.Hour))
}

func TestPruneHistoryWithoutDatabase(t *testing.T) {
	svc := newOpsService(nil, nil)

	assert.NoError(t, svc.PruneHistory(context.Background(), 24*time.Hour))
}
