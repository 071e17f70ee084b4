package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futuretech_backend/internal/config"
	"futuretech_backend/internal/controller"
	"futuretech_backend/internal/quiz"
	"futuretech_backend/internal/repository"
	"futuretech_backend/internal/service"
	"futuretech_backend/pkg/configwatcher"
	"futuretech_backend/pkg/database"
	"futuretech_backend/pkg/logger"
	"futuretech_backend/pkg/monitoring"
	"futuretech_backend/pkg/security"
	"futuretech_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Bank   *quiz.Bank
}

type repositories struct {
	user       *repository.UserRepository
	submission *repository.SubmissionRepository
	lead       *repository.LeadRepository
	resume     *repository.ResumeRepository
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	test    *service.TestService
	lead    *service.LeadService
	resume  *service.ResumeService
}

type controllers struct {
	auth   *controller.AuthController
	test   *controller.TestController
	lead   *controller.LeadController
	resume *controller.ResumeController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		submission: repository.NewSubmissionRepository(db),
		lead:       repository.NewLeadRepository(db),
		resume:     repository.NewResumeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	storage := service.NewStorageService(cfg)
	cache := service.NewResultCache(rdb, cfg.Quiz.ResultCacheTTL)

	return &services{
		auth:    service.NewAuthService(repos.user, cfg),
		storage: storage,
		test:    service.NewTestService(a.Bank, repos.submission, repos.lead, cache),
		lead:    service.NewLeadService(repos.lead),
		resume:  service.NewResumeService(repos.resume, storage),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		test:   controller.NewTestController(s.test),
		lead:   controller.NewLeadController(s.lead),
		resume: controller.NewResumeController(s.resume),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 不可用时结果缓存降级为直连数据库
		logger.Log.Warn("Failed to initialize redis, result cache disabled", zap.Error(err))
		rdb = nil
	}

	// 题库加载失败直接终止,不允许带着空题库启动
	bank, err := quiz.Load(cfg.Quiz.QuestionsPath)
	if err != nil {
		logger.Log.Fatal("Failed to load question bank", zap.Error(err))
	}
	logger.Log.Info("Question bank loaded",
		zap.Int("questions", bank.Count()),
		zap.Int("totalMarks", bank.TotalMarks()))

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Bank:   bank,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("futuretech-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置文件热更新,仅刷新可动态调整的字段
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			app.Config.RateLimit = c.RateLimit
			logger.Log.Info("Config reloaded")
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
