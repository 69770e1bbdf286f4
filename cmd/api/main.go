package main

import (
	authhandler "github.com/Prasi710/Turffy/internal/auth/handler"
	authrepository "github.com/Prasi710/Turffy/internal/auth/repository"
	authservice "github.com/Prasi710/Turffy/internal/auth/service"
	"github.com/Prasi710/Turffy/internal/auth/token"
	authvalidator "github.com/Prasi710/Turffy/internal/auth/validator"
	bookinghandler "github.com/Prasi710/Turffy/internal/bookings/handler"
	bookingrepository "github.com/Prasi710/Turffy/internal/bookings/repository"
	bookingservice "github.com/Prasi710/Turffy/internal/bookings/service"
	turfhandler "github.com/Prasi710/Turffy/internal/turfs/handler"
	turfrepository "github.com/Prasi710/Turffy/internal/turfs/repository"
	turfservice "github.com/Prasi710/Turffy/internal/turfs/service"
	"github.com/Prasi710/Turffy/pkg/app"
	"github.com/Prasi710/Turffy/pkg/config"
	"github.com/Prasi710/Turffy/pkg/contracts"
	"github.com/Prasi710/Turffy/pkg/events"
	"github.com/Prasi710/Turffy/pkg/middleware"
	"github.com/Prasi710/Turffy/pkg/payment"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Turffy API service")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, serverApp)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, serverApp *app.Application) []contracts.Handler {
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenExpiry)
	requireAuth := middleware.RequireAuth(tokens, cfg.Log)

	turfRepo := turfrepository.NewStaticTurfRepository(turfrepository.SeedTurfs())
	turfService := turfservice.NewTurfService(turfRepo, cfg.Log)

	authValidator := authvalidator.NewAuthValidator(cfg.Log)
	authService := authservice.NewAuthService(
		authrepository.NewMongoUserRepository(cfg),
		authrepository.NewMongoOtpRepository(cfg),
		tokens,
		authValidator,
		cfg,
	)

	gateway := payment.NewRazorpayClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.Log)
	publisher := initPublisher(cfg, serverApp)

	bookingService := bookingservice.NewBookingService(
		bookingrepository.NewMongoBookingRepository(cfg),
		turfRepo,
		bookingservice.NewCalendar(cfg.OpeningHour, cfg.ClosingHour),
		gateway,
		publisher,
		cfg.Log,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		turfhandler.NewTurfHandler(turfService, cfg.Log),
		authhandler.NewAuthHandler(authService, requireAuth, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, requireAuth, cfg.Log),
	}
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("No Kafka brokers configured, reservation events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}

	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka publisher", "error", err)
		}
	})

	return publisher
}
