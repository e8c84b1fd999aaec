package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderdesk/cmd"
	httpin "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/payments"
	"orderdesk/internal/adapters/out/postgres/auditrepo"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/adapters/out/postgres/restaurantrepo"
	"orderdesk/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	amqpConn, err := amqp.Dial(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()

	relay, err := rabbitmq.NewNotificationRelay(amqpConn)
	if err != nil {
		log.Fatalf("Error declaring notification exchange: %v", err)
	}

	paymentsClient := payments.NewClient(configs.PaymentsBaseURL, configs.PaymentsAPIKey)
	audit := auditrepo.NewGormAuditTrail(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, audit, relay, paymentsClient, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:       goDotEnvVariable("RABBITMQ_URL"),
		PaymentsBaseURL:   goDotEnvVariable("PAYMENTS_BASE_URL"),
		PaymentsAPIKey:    goDotEnvVariable("PAYMENTS_API_KEY"),
		UrgentAfter:       durationEnvVariable("URGENT_AFTER", 30*time.Minute),
		SideEffectTimeout: durationEnvVariable("SIDE_EFFECT_TIMEOUT", 5*time.Second),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return d
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&restaurantrepo.RestaurantDTO{},
		&auditrepo.StatusChangeDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateRejectOrderCommandHandler(),
		app.CreateSetCookingTimeCommandHandler(),
		app.CreateBulkOrderActionCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderDetailQueryHandler(),
		app.CreateGetPendingOrdersQueryHandler(),
		app.CreateGetOrderStatsQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != nethttp.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
