package main

import (
	"context"
	"log"
	"net/http"

	"homecare-booking/cmd"
	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/processor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/usecase"
	"homecare-booking/internal/wire"
	"homecare-booking/migrations"
	"homecare-booking/pkg/database"
	"homecare-booking/pkg/relay"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store", config.Store.Driver),
	)

	if config.Stripe.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set, payment endpoints will answer 500")
	}
	if config.Relay.AccessKey == "" {
		logger.Warn("SILENTFORMS_ACCESS_KEY is not set, contact endpoint will answer 500")
	}

	ctx := context.Background()

	var db database.PgxIface
	switch config.Store.Driver {
	case utils.StoreDriverPostgres:
		db, err = database.InitDB(ctx, config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := migrations.Apply(ctx, db, logger); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Database connected successfully")
	case utils.StoreDriverMemory:
		logger.Warn("Bookings are kept in memory and in the log only")
	default:
		logger.Fatal("Unknown BOOKING_STORE", zap.String("driver", config.Store.Driver))
	}

	var options []entity.ServiceOption
	if config.Catalog.File != "" {
		options, err = repository.LoadServiceOptions(config.Catalog.File)
		if err != nil {
			logger.Fatal("Failed to load catalog", zap.Error(err))
		}
		logger.Info("Catalog loaded", zap.String("file", config.Catalog.File), zap.Int("services", len(options)))
	}

	repos := repository.NewRepository(db, options, logger)

	httpClient := &http.Client{Timeout: config.HTTP.ClientTimeout}
	gateways := usecase.Gateways{
		Processor: processor.NewStripeProcessor(config.Stripe, httpClient, logger),
		Relay:     relay.NewFormClient(config.Relay.URL, config.Relay.AccessKey, config.Relay.ToEmail, httpClient),
		Mailer:    relay.NewMailClient(config.Notification.Endpoint, config.Notification.APIKey, httpClient),
	}

	app := wire.Wiring(repos, gateways, db, config, logger)

	if err := cmd.APIServer(app.Router, config, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	// Booking e-mails are sent after the response; let the last ones finish.
	app.Service.Notification.Wait()
}
