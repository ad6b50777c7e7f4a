package conciergeService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/api/concierge"
	conciergeRepository "ConciergeGolang/internal/api/concierge/repository"
	"ConciergeGolang/internal/entity"
	"ConciergeGolang/pkg/events"
	"ConciergeGolang/pkg/gemini"
	"ConciergeGolang/pkg/nlp"
	"ConciergeGolang/pkg/places"
	"ConciergeGolang/pkg/redis"
	"ConciergeGolang/pkg/smtp"
	"ConciergeGolang/pkg/utils"
	"ConciergeGolang/pkg/weather"
	"ConciergeGolang/pkg/whatsapp"
)

type IConciergeService interface {
	HandleMessage(ctx context.Context, req concierge.MessageRequest) (*concierge.MessageResponse, error)

	RequestHandoff(ctx context.Context, req concierge.HandoffRequest) (*concierge.HandoffResponse, error)
	AskAgent(ctx context.Context, req concierge.AgentRequest) (*concierge.AgentResponse, error)

	GetAnalytics(ctx context.Context) (*concierge.AnalyticsResponse, error)
	GetHistory(ctx context.Context, sessionID string, limit int) (*concierge.HistoryResponse, error)
	PruneHistory(ctx context.Context, retention time.Duration) error

	CurrentWeather(ctx context.Context, lat, lon float64) (*weather.Conditions, error)
	FindEvents(ctx context.Context, city, keyword string) ([]events.Event, error)
}

type conciergeService struct {
	log            *logrus.Logger
	matcher        *nlp.Matcher
	guard          *SessionGuard
	placesClient   places.IPlaces
	conciergeRepo  conciergeRepository.Repository
	redisServer    redis.IRedis
	geminiClient   gemini.IGemini
	whatsappClient whatsapp.IWhatsappSender
	smtpMailer     smtp.ItfSmtp
	weatherClient  weather.IWeather
	eventsClient   events.IEvents
	utils          utils.IUtils
	hotelName      string
}

func New(
	log *logrus.Logger,
	corpus []entity.FAQEntry,
	guard *SessionGuard,
	placesClient places.IPlaces,
	conciergeRepo conciergeRepository.Repository,
	redisServer redis.IRedis,
	geminiClient gemini.IGemini,
	whatsappClient whatsapp.IWhatsappSender,
	smtpMailer smtp.ItfSmtp,
	weatherClient weather.IWeather,
	eventsClient events.IEvents,
	u utils.IUtils,
	hotelName string,
) IConciergeService {
	return &conciergeService{
		log:            log,
		matcher:        nlp.NewMatcher(corpus),
		guard:          guard,
		placesClient:   placesClient,
		conciergeRepo:  conciergeRepo,
		redisServer:    redisServer,
		geminiClient:   geminiClient,
		whatsappClient: whatsappClient,
		smtpMailer:     smtpMailer,
		weatherClient:  weatherClient,
		eventsClient:   eventsClient,
		utils:          u,
		hotelName:      hotelName,
	}
}
