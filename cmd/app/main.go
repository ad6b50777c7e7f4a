package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ConciergeGolang/internal/config"
	"ConciergeGolang/pkg/log"
	"ConciergeGolang/pkg/redis"
	"ConciergeGolang/pkg/smtp"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()
	smtpMailer := smtp.New()

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithRedisServer(redisServer),
		config.WithSMTPMailer(smtpMailer),
		config.WithMiddleware(),
		config.WithPlacesClient(),
		config.WithBcryptUtils(),
		config.WithUtils(),
	}

	// Optional integrations attach only when their environment is present,
	// so a laptop run needs nothing beyond the local corpus file.
	if os.Getenv("DB_HOST") != "" {
		options = append(options, config.WithDatabase())
	}
	if os.Getenv("AWS_REGION") != "" {
		options = append(options, config.WithS3Client())
	}
	if os.Getenv("GEMINI_API_KEY") != "" {
		options = append(options, config.WithGeminiClient())
	}
	if os.Getenv("OPENWEATHER_API_KEY") != "" {
		options = append(options, config.WithWeatherClient())
	}
	if os.Getenv("TICKETMASTER_API_KEY") != "" {
		options = append(options, config.WithEventsClient())
	}
	if os.Getenv("WHATSAPP_ENABLED") == "true" {
		options = append(options, config.WithWhatsappClient())
	}

	// The corpus loader prefers S3, so it goes after the S3 client.
	options = append(options, config.WithFAQCorpus())

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
}
