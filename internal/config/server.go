package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"ConciergeGolang/database/postgres"
	authHandler "ConciergeGolang/internal/api/auth/handler"
	authService "ConciergeGolang/internal/api/auth/service"
	conciergeHandler "ConciergeGolang/internal/api/concierge/handler"
	conciergeRepository "ConciergeGolang/internal/api/concierge/repository"
	conciergeService "ConciergeGolang/internal/api/concierge/service"
	"ConciergeGolang/internal/entity"
	"ConciergeGolang/internal/middleware"
	"ConciergeGolang/pkg/bcrypt"
	"ConciergeGolang/pkg/events"
	"ConciergeGolang/pkg/gemini"
	"ConciergeGolang/pkg/knowledge"
	"ConciergeGolang/pkg/places"
	"ConciergeGolang/pkg/redis"
	"ConciergeGolang/pkg/s3"
	"ConciergeGolang/pkg/smtp"
	"ConciergeGolang/pkg/utils"
	"ConciergeGolang/pkg/weather"
	"ConciergeGolang/pkg/whatsapp"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	corpus         []entity.FAQEntry
	placesClient   places.IPlaces
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	weatherClient  weather.IWeather
	eventsClient   events.IEvents
	s3Client       s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if len(server.corpus) == 0 {
		return nil, fmt.Errorf("FAQ corpus is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

// WithFAQCorpus loads the question bank the fuzzy matcher answers from.
// S3 is tried first, then the local file; the server refuses to start
// without a corpus because the concierge would have nothing to say.
func WithFAQCorpus() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the FAQ corpus")
		}

		loader := knowledge.NewLoader(s.s3Client, s.log)
		corpus, err := loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load FAQ corpus: %w", err)
		}
		s.corpus = corpus
		return nil
	}
}

func WithPlacesClient() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the places client")
		}
		s.placesClient = places.New(s.log)
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithWeatherClient() ServerOption {
	return func(s *Server) error {
		client, err := weather.New(s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create weather client: %v", err)
			}
			return fmt.Errorf("failed to create weather client: %w", err)
		}
		s.weatherClient = client
		return nil
	}
}

func WithEventsClient() ServerOption {
	return func(s *Server) error {
		client, err := events.New(s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create events client: %v", err)
			}
			return fmt.Errorf("failed to create events client: %w", err)
		}
		s.eventsClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	hotelName := os.Getenv("HOTEL_NAME")
	if hotelName == "" {
		hotelName = "the hotel"
	}

	// Auth Domain
	authServices := authService.New(s.log, s.redisServer, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Concierge Domain. The repository stays nil without a database so the
	// service skips conversation logging instead of panicking.
	var conciergeRepo conciergeRepository.Repository
	if s.db != nil {
		conciergeRepo = conciergeRepository.New(s.db, s.log)
	}
	guard := conciergeService.NewSessionGuard()
	conciergeServices := conciergeService.New(
		s.log,
		s.corpus,
		guard,
		s.placesClient,
		conciergeRepo,
		s.redisServer,
		s.geminiClient,
		s.whatsappClient,
		s.smtpMailer,
		s.weatherClient,
		s.eventsClient,
		s.utils,
		hotelName,
	)
	conciergeHandlers := conciergeHandler.New(s.log, s.validator, s.middleware, conciergeServices)

	if s.db != nil {
		go s.runHistoryRetention(conciergeServices)
	}

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, conciergeHandlers)
}

// runHistoryRetention sweeps old conversation turns once at startup and then
// daily. CONVERSATION_RETENTION_DAYS controls the window, defaulting to 30.
func (s *Server) runHistoryRetention(svc conciergeService.IConciergeService) {
	retentionDays := 30
	if v := os.Getenv("CONVERSATION_RETENTION_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			retentionDays = parsed
		}
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.PruneHistory(ctx, retention); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Conversation retention sweep failed")
		}
	}

	sweep()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		sweep()
	}
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.whatsappClient != nil {
			s.whatsappClient.Disconnect()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
