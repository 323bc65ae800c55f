package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"resto/cmd"
	adapterhttp "resto/internal/adapters/in/http"
	"resto/internal/adapters/out/imagestore"
	"resto/internal/adapters/out/postgres/driverrepo"
	"resto/internal/adapters/out/postgres/orderrepo"
	"resto/internal/generated/servers"
	"resto/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultDispatchStaleAfter = 5 * time.Minute

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	imageStore, err := imagestore.NewClient(configs.MediaBaseURL)
	if err != nil {
		log.Fatalf("Error creating media service client: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, imageStore, logger)

	jobManager := jobs.NewJobManager(
		app.CreateDispatchRidersCommandHandler(),
		app.CreateReconcileDriversCommandHandler(),
		configs.DispatchStaleAfter,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:          goDotEnvVariable("JWT_SECRET"),
		MediaBaseURL:       goDotEnvVariable("MEDIA_BASE_URL"),
		DispatchStaleAfter: dispatchStaleAfter(),
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

func dispatchStaleAfter() time.Duration {
	raw := goDotEnvVariable("AUTO_ASSIGN_STALE_AFTER")
	if raw == "" {
		return defaultDispatchStaleAfter
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Fatalf("Invalid AUTO_ASSIGN_STALE_AFTER value %q", raw)
	}
	return d
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{}); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Validator = adapterhttp.NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := adapterhttp.NewServer(
		app.CreateAcceptOrderCommandHandler(),
		app.CreateAdvanceStatusCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateStartAutoAssignCommandHandler(),
		app.CreateCancelAutoAssignCommandHandler(),
		app.CreateAssignRiderCommandHandler(),
		app.CreateApproveRefundCommandHandler(),
		app.CreateRejectRefundCommandHandler(),
		app.CreateRequestExchangeCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetDriversQueryHandler(),
		app.CreateGetNeedsAssignmentCountQueryHandler(),
	)

	api := e.Group("", adapterhttp.ScopeMiddleware(configs.JWTSecret))
	servers.RegisterHandlers(api, server)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
