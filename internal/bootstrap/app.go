package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/RafaelDevProjects/hotel-reservation-system/internal/handler/http"
	gormpersistence "github.com/RafaelDevProjects/hotel-reservation-system/internal/infra/persistence/gorm"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/infra/persistence/memory"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/infra/setup"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/middleware"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/service"
)

// Config holds the settings read from the environment.
type Config struct {
	AppEnv          string
	ServerPort      string
	LogLevel        string
	StoreDriver     string
	DB              setup.DBOptions
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	KeyPrefix       string
	RateLimitMax    int
	RateLimitWindow time.Duration
	CORSOrigin      string
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      os.Getenv("APP_ENV"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		StoreDriver: strings.ToLower(os.Getenv("STORE_DRIVER")),
		DB: setup.DBOptions{
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:       os.Getenv("REDIS_KEY_PREFIX"),
		CORSOrigin:      os.Getenv("CORS_ALLOWED_ORIGIN"),
		RateLimitMax:    100,
		RateLimitWindow: time.Second,
	}
	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = setup.DriverMySQL
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "hotel:"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}
	cfg.DB.Driver = cfg.StoreDriver

	switch cfg.StoreDriver {
	case setup.DriverMySQL, setup.DriverPostgres, setup.DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_MAX must be a positive integer, got %q", v)
		}
		cfg.RateLimitMax = n
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration, got %q", v)
		}
		cfg.RateLimitWindow = d
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App holds the running components.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	HttpServer  *http.Server
}

// Stores bundles the repositories and the transactor of one backend.
type Stores struct {
	Rooms        repository.RoomRepository
	Reservations repository.ReservationRepository
	Tx           repository.Transactor
}

// MemoryStores returns Stores backed by a fresh in-memory store.
func MemoryStores() Stores {
	store := memory.NewStore()
	return Stores{Rooms: store.Rooms(), Reservations: store.Reservations(), Tx: store}
}

// GormStores returns Stores backed by db.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Rooms:        gormpersistence.NewGormRoomRepository(db),
		Reservations: gormpersistence.NewGormReservationRepository(db),
		Tx:           gormpersistence.NewGormTransactor(db),
	}
}

// NewApp builds every component from the environment.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := NewLogger(cfg)
	log.Info("Configuration loaded successfully")

	app := &App{Config: cfg, Log: log}

	var stores Stores
	if cfg.StoreDriver == setup.DriverMemory {
		log.Warn("Using in-memory store; data is lost on restart")
		stores = MemoryStores()
	} else {
		db, err := setup.InitDB(cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to init DB: %w", err)
		}
		log.WithField("driver", cfg.StoreDriver).Info("Database initialized")

		if err := setup.MigrateDB(db); err != nil {
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}
		log.Info("Database migrated")
		app.DB = db
		stores = GormStores(db)
	}

	if cfg.RedisAddr != "" {
		redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		app.RedisClient = redisClient
		log.Info("Redis client initialized")
	} else {
		log.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	extra := []gin.HandlerFunc{middleware.CORS(cfg.CORSOrigin)}
	if app.RedisClient != nil {
		extra = append(extra, middleware.RateLimit(middleware.NewRedisCounter(app.RedisClient), cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow))
	}
	router := NewRouter(stores, clockwork.NewRealClock(), log, extra...)
	app.HttpServer = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Application assembled successfully")

	return app, nil
}

// NewLogger builds the application logger: JSON in production, coloured
// text elsewhere.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	// services log through the standard logger
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	return log
}

// NewRouter wires services and handlers over stores into a gin engine. Extra
// middleware runs after recovery and request logging.
func NewRouter(stores Stores, clock clockwork.Clock, log *logrus.Logger, extra ...gin.HandlerFunc) *gin.Engine {
	roomService := service.NewRoomService(stores.Rooms, stores.Tx, clock)
	reservationService := service.NewReservationService(stores.Rooms, stores.Reservations, stores.Tx, clock)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(extra...)

	httpHandler.RegisterRoutes(
		router,
		httpHandler.NewRoomHandler(roomService, reservationService),
		httpHandler.NewReservationHandler(reservationService),
	)
	return router
}

// Start serves HTTP in the background.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown drains in-flight requests, then closes Redis and the database.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		} else {
			a.Log.Info("Redis connection closed.")
		}
	}

	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Log.Errorf("Error closing database connection: %v", err)
			} else {
				a.Log.Info("Database connection closed.")
			}
		}
	}

	a.Log.Info("Application shutdown complete.")
}
