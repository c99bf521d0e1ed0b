package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-transaction-records/docs"
	"github.com/sbilibin2017/gw-transaction-records/internal/handlers"
	"github.com/sbilibin2017/gw-transaction-records/internal/jwt"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/middlewares"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
	"github.com/sbilibin2017/gw-transaction-records/internal/repositories"
	"github.com/sbilibin2017/gw-transaction-records/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment at startup.
type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	LogEncoding string

	StorageMode     models.StorageMode
	StorageFilePath string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	CacheEnabled      bool
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExpSecond int
}

// @title gw-transaction-records API
// @version 1.0.0
// @description Service for storing and querying transaction records
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath, tokenUserID := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if tokenUserID >= 0 {
		if err := printToken(context.Background(), os.Stdout, cfg, tokenUserID); err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
		return
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path and,
// when -token is given, the user id to issue an access token for (-1 otherwise).
func parseFlags() (string, int64) {
	c := flag.String("c", "config.env", "Path to configuration file")
	token := flag.Int64("token", -1, "Print an access token for the given user id and exit")
	flag.Parse()
	return *c, *token
}

// parseConfig loads environment variables from a file and returns
// the application, storage, database, Redis, Kafka, logging, and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogEncoding = getEnv("APP_LOG_ENCODING", "")

	// Storage config
	if cfg.StorageMode, err = models.ParseStorageMode(getEnv("STORAGE_TYPE", "memory")); err != nil {
		return
	}
	cfg.StorageFilePath = getEnv("STORAGE_FILE_PATH", "file.json")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "database")
	if cfg.PgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "false")); err != nil {
		err = fmt.Errorf("CACHE_ENABLED: %w", err)
		return
	}
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "transactions")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "60"); err != nil {
		return
	}

	return
}

func newJWT(cfg config) *jwt.JWT {
	return jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)
}

// printToken writes a signed access token for userID to out.
func printToken(ctx context.Context, out io.Writer, cfg config, userID int64) error {
	token, err := newJWT(cfg).Generate(ctx, userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

// storage bundles the engine selected by the storage mode.
type storage struct {
	reader services.TransactionReader
	writer services.TransactionWriter
	db     *sqlx.DB // nil unless the mode is db
	close  func() error
}

// openStorage opens the engine for the factory's storage mode.
func openStorage(ctx context.Context, cfg config, factory *models.Factory) (*storage, error) {
	switch factory.Mode() {
	case models.StorageMemory:
		repo := repositories.NewTransactionMemoryRepository()
		return &storage{reader: repo, writer: repo, close: func() error { return nil }}, nil

	case models.StorageFile:
		repo := repositories.NewTransactionFileRepository(cfg.StorageFilePath, factory)
		if err := repo.Reload(ctx); err != nil {
			return nil, err
		}
		return &storage{reader: repo, writer: repo, close: func() error { return nil }}, nil

	case models.StorageDB:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)
		logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PgHost, "port", cfg.PgPort, "db", cfg.PgDB)

		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		db.SetMaxOpenConns(cfg.PgMaxOpenConns)
		db.SetMaxIdleConns(cfg.PgMaxIdleConns)

		if err := repositories.MigrateTransactions(ctx, db); err != nil {
			db.Close()
			return nil, err
		}

		return &storage{
			reader: repositories.NewTransactionReadRepository(db),
			writer: repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext),
			db:     db,
			close:  db.Close,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownStorageMode, factory.Mode())
}

// newRouter sets up routes for the transaction service.
// Write routes require a bearer token and, when db is set, run inside a SQL transaction.
func newRouter(cfg config, svc *services.TransactionService, tokener middlewares.Tokener, db *sqlx.DB) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	handlers.RegisterListTransactionsHandler(r, handlers.NewListTransactionsHandler(svc))
	handlers.RegisterCountTransactionsHandler(r, handlers.NewCountTransactionsHandler(svc))
	handlers.RegisterGetTransactionHandler(r, handlers.NewGetTransactionHandler(svc))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokener))
		if db != nil {
			r.Use(middlewares.TxMiddleware(db))
		}
		handlers.RegisterCreateTransactionHandler(r, handlers.NewCreateTransactionHandler(svc))
		handlers.RegisterUpdateTransactionHandler(r, handlers.NewUpdateTransactionHandler(svc))
		handlers.RegisterDeleteTransactionHandler(r, handlers.NewDeleteTransactionHandler(svc))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}

// run initializes the logger, storage, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	factory := models.NewFactory(cfg.StorageMode, nil)

	store, err := openStorage(ctx, cfg, factory)
	if err != nil {
		return err
	}
	defer store.close()
	logger.Log.Infow("storage ready", "mode", factory.Mode())

	// Connect to Redis
	var cache services.TransactionCache
	if cfg.CacheEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		cache = repositories.NewTransactionCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
	}

	// Kafka producer
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	svc := services.NewTransactionService(factory, store.reader, store.writer, cache, kafkaWriter,
		services.WithAfterCommit(middlewares.AfterCommit),
	)
	r := newRouter(cfg, svc, newJWT(cfg), store.db)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
