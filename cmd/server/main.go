package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/vishal-chaure/RapidPSv/internal/delivery/http"
	"github.com/vishal-chaure/RapidPSv/internal/observability"
	"github.com/vishal-chaure/RapidPSv/internal/repository/postgres"
	"github.com/vishal-chaure/RapidPSv/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Database connection (optional: the prediction log is write-only)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			pool = nil
		}
	}
	if pool != nil {
		defer pool.Close()
		log.Println("Connected to PostgreSQL")
	} else {
		log.Println("Running without prediction log persistence")
	}

	// Dependency Injection: Repositories
	var repo service.PredictionRepository
	if pool != nil {
		repo = postgres.NewPostgresRepository(pool)
	} else {
		repo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	wardSvc := service.NewWardService(cfg.WardGeoJSONPath)
	safetySvc := service.NewSafetyService(wardSvc)
	historySvc := service.NewHistoryService(wardSvc, clock)
	futureSvc := service.NewFutureService(wardSvc, safetySvc, clock)
	tipsSvc := service.NewTipsService(safetySvc, clock)

	geocoder := service.NewCachedGeocoder(
		service.NewNominatimClient(cfg.NominatimURL, cfg.GeocodeTimeout),
		cfg.GeocodeCacheSize,
		metrics,
	)
	searchSvc := service.NewSearchService(wardSvc, geocoder, metrics)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Mumbai Safety Predictor v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	handler := http.NewHandler(wardSvc, safetySvc, historySvc, futureSvc, tipsSvc, searchSvc, repo, metrics)
	http.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL      string
	WardGeoJSONPath  string
	NominatimURL     string
	GeocodeTimeout   time.Duration
	GeocodeCacheSize int
	Port             string
	Env              string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		WardGeoJSONPath:  getEnv("WARD_GEOJSON_PATH", "static/data/mumbai_wards.geojson"),
		NominatimURL:     getEnv("NOMINATIM_URL", ""),
		GeocodeTimeout:   getEnvDuration("GEOCODE_TIMEOUT", 10*time.Second),
		GeocodeCacheSize: getEnvInt("GEOCODE_CACHE_SIZE", 500),
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
