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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/actionplan"
	actionplanPostgres "github.com/inspectra/inspection-management/internal/actionplan/postgres"
	"github.com/inspectra/inspection-management/internal/auth"
	authPostgres "github.com/inspectra/inspection-management/internal/auth/postgres"
	"github.com/inspectra/inspection-management/internal/chatbot"
	"github.com/inspectra/inspection-management/internal/core/events"
	"github.com/inspectra/inspection-management/internal/dashboard"
	dashboardPostgres "github.com/inspectra/inspection-management/internal/dashboard/postgres"
	"github.com/inspectra/inspection-management/internal/inspection"
	inspectionPostgres "github.com/inspectra/inspection-management/internal/inspection/postgres"
	"github.com/inspectra/inspection-management/internal/organization"
	organizationPostgres "github.com/inspectra/inspection-management/internal/organization/postgres"
	"github.com/inspectra/inspection-management/internal/template"
	templatePostgres "github.com/inspectra/inspection-management/internal/template/postgres"
	"github.com/inspectra/inspection-management/internal/transport/rest"
	"github.com/inspectra/inspection-management/internal/user"
	userPostgres "github.com/inspectra/inspection-management/internal/user/postgres"
	"github.com/inspectra/inspection-management/pkg/logger"
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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
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

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	log := deps.Logger
	gdb := deps.GormDB

	resolver := auth.NewResolver()
	rbac := auth.NewRBACAuthorization(resolver, log)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gdb), tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	orgRepo := organizationPostgres.NewOrganizationRepository(gdb)
	orgService := organization.NewService(orgRepo, resolver, log)
	orgHandler := organization.NewHandler(orgService)

	userRepo := userPostgres.NewUserRepository(gdb)
	userService := user.NewService(userRepo, orgRepo, resolver, log)
	userHandler := user.NewHandler(userService)

	templateRepo := templatePostgres.NewTemplateRepository(gdb)
	templateService := template.NewService(templateRepo, resolver, log)
	templateHandler := template.NewHandler(templateService)

	inspectionRepo := inspectionPostgres.NewInspectionRepository(gdb)
	inspectionService := inspection.NewService(inspectionRepo, templateRepo, resolver, deps.EventBus, log)
	inspectionHandler := inspection.NewHandler(inspectionService)

	actionPlanRepo := actionplanPostgres.NewActionPlanRepository(gdb)
	actionPlanService := actionplan.NewService(actionPlanRepo, resolver, log)
	actionPlanHandler := actionplan.NewHandler(actionPlanService)

	// failed inspection items open corrective action plans
	actionplan.NewEventHandler(actionPlanRepo, log).Register(deps.EventBus)

	statsRepo := dashboardPostgres.NewStatsRepository(gdb)
	dashboardService := dashboard.NewService(orgRepo, statsRepo, resolver, log)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	var chatbotHandler *chatbot.Handler
	if cfg.Assistant.APIKey != "" {
		client := chatbot.NewClient(cfg.Assistant.APIKey, cfg.Assistant.BaseURL)
		chatbotService := chatbot.NewService(client, dashboardService, cfg.Assistant.Model, cfg.Assistant.Timeout, log)
		chatbotHandler = chatbot.NewHandler(chatbotService)
	} else {
		log.Info("assistant API key not configured; chatbot routes disabled")
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB, rest.Handlers{
		Auth:       authHandler,
		RBAC:       rbac,
		Org:        orgHandler,
		User:       userHandler,
		Template:   templateHandler,
		Inspection: inspectionHandler,
		ActionPlan: actionPlanHandler,
		Dashboard:  dashboardHandler,
		Chatbot:    chatbotHandler,
	}, log)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config:   config,
		Logger:   log,
		DB:       db,
		GormDB:   gdb,
		Router:   chi.NewRouter(),
		EventBus: events.NewEventBus(log),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx connection so both
// share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
