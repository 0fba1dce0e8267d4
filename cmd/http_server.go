package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/auth"
	"github.com/sce-foundation/sce-portal/internal/core/events"
	"github.com/sce-foundation/sce-portal/internal/object"
	objectstorage "github.com/sce-foundation/sce-portal/internal/object/storage"
	"github.com/sce-foundation/sce-portal/internal/position"
	positionstorage "github.com/sce-foundation/sce-portal/internal/position/storage"
	"github.com/sce-foundation/sce-portal/internal/post"
	poststorage "github.com/sce-foundation/sce-portal/internal/post/storage"
	"github.com/sce-foundation/sce-portal/internal/seed"
	sessionstorage "github.com/sce-foundation/sce-portal/internal/session/storage"
	"github.com/sce-foundation/sce-portal/internal/transport/rest"
	"github.com/sce-foundation/sce-portal/internal/user"
	userstorage "github.com/sce-foundation/sce-portal/internal/user/storage"
	"github.com/sce-foundation/sce-portal/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
	Seeder *seed.Seeder
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	// Demo data is seeded on startup so a fresh deployment is browsable
	// immediately. Every seeding step is idempotent.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := deps.Seeder.Run(seedCtx); err != nil {
		deps.Logger.Error("seeding failed", "error", err)
	}
	seedCancel()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.L()

	gormDB, err := initGormDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open health check connection: %w", err)
	}

	bus := events.NewEventBus(appLogger)
	events.RegisterAuditLogger(bus, appLogger)

	userRepo := userstorage.NewUserRepository(gormDB)
	sessionRepo := sessionstorage.NewSessionRepository(gormDB)
	objectRepo := objectstorage.NewObjectRepository(gormDB)
	postRepo := poststorage.NewPostRepository(gormDB)
	positionRepo := positionstorage.NewPositionRepository(gormDB)

	tokens := auth.NewJWTTokenGenerator(config.Security.SessionTokenSecret, config.Security.SessionTokenTTL)

	authService := auth.NewService(userRepo, sessionRepo, tokens, bus, appLogger,
		config.Security.BootstrapEmail, config.Security.BCryptCost)
	userService := user.NewService(userRepo, bus, appLogger)
	objectService := object.NewService(objectRepo, appLogger)
	postService := post.NewService(postRepo, appLogger)
	positionService := position.NewService(positionRepo, appLogger)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:              db.DB,
		AuthHandler:     auth.NewHandler(authService),
		UserHandler:     user.NewHandler(userService),
		ObjectHandler:   object.NewHandler(objectService),
		PostHandler:     post.NewHandler(postService),
		PositionHandler: position.NewHandler(positionService),
		AllowedOrigins:  config.Server.AllowedOrigins,
		Logger:          appLogger,
	})

	seeder := seed.NewSeeder(userRepo, objectRepo, postRepo, positionRepo, appLogger,
		config.Security.BootstrapEmail)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		GormDB: gormDB,
		Router: router,
		Seeder: seeder,
	}, nil
}

func initGormDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		dialector = postgres.Open(cfg.Source)
	} else {
		dialector = sqlite.Open(cfg.Source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// initDB opens a plain connection used by the health endpoint.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	driver := "sqlite3"
	if cfg.IsPostgres() {
		driver = "pgx"
	}

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
