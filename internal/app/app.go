package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"quizapp/internal/config"
	"quizapp/internal/controller"
	"quizapp/internal/repository"
	"quizapp/internal/service"
	"quizapp/internal/web"
	"quizapp/pkg/configwatcher"
	"quizapp/pkg/database"
	"quizapp/pkg/logger"
	"quizapp/pkg/monitoring"
	"quizapp/pkg/security"
	"quizapp/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB

	limiter        *security.Limiter
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	question *repository.QuestionRepository
	score    *repository.ScoreRepository
}

type services struct {
	quiz     *service.QuizService
	question *service.QuestionService
	score    *service.ScoreService
}

type controllers struct {
	home     *controller.HomeController
	quiz     *controller.QuizController
	score    *controller.ScoreController
	question *controller.QuestionController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(db),
		score:    repository.NewScoreRepository(db),
	}
}

func (a *App) initServices(repos *repositories) *services {
	return &services{
		quiz:     service.NewQuizService(repos.question, repos.score),
		question: service.NewQuestionService(repos.question),
		score:    service.NewScoreService(repos.score),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		home:     controller.NewHomeController(),
		quiz:     controller.NewQuizController(s.quiz),
		score:    controller.NewScoreController(s.score),
		question: controller.NewQuestionController(s.question),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.limiter))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp opens the configured database and builds the application.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	app, err := NewWithDB(cfg, db)
	if err != nil {
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracerProvider = tp
	}

	return app, nil
}

// NewWithDB builds the application around an already migrated database.
func NewWithDB(cfg *config.Config, db *gorm.DB) (*App, error) {
	gin.SetMode(ginMode(cfg.Server.Mode))

	app := &App{
		Config:  cfg,
		DB:      db,
		limiter: security.NewLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app, nil
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.limiter.Run(ctx.Done())
	a.watchConfig(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 5 秒内完成关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
	return nil
}

// watchConfig applies log level changes from the config file without a restart.
func (a *App) watchConfig(ctx context.Context) {
	if a.Config.File == "" {
		return
	}
	go func() {
		err := configwatcher.Watch(ctx, a.Config.File, func(cfg *config.Config) {
			logger.SetLevel(cfg)
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}
