package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/controller"
	"task_maturity_backend/internal/repository"
	"task_maturity_backend/internal/service"
	"task_maturity_backend/pkg/configwatcher"
	"task_maturity_backend/pkg/database"
	"task_maturity_backend/pkg/logger"
	"task_maturity_backend/pkg/monitoring"
	"task_maturity_backend/pkg/security"
	"task_maturity_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configFile = "configs/config.yaml"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	admin    *repository.AdminRepository
	question *repository.QuestionRepository
	test     *repository.TestRepository
	cache    service.ResultCache
}

type services struct {
	auth     *service.AuthService
	analysis *service.AnalysisService
	test     *service.TestService
	admin    *service.AdminService
	storage  *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	test      *controller.TestController
	result    *controller.ResultController
	admin     *controller.AdminController
	dimension *controller.DimensionController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		user:     repository.NewUserRepository(db),
		admin:    repository.NewAdminRepository(db),
		question: repository.NewQuestionRepository(db),
		test:     repository.NewTestRepository(db),
	}
	if rdb != nil {
		repos.cache = repository.NewRedisResultCache(rdb)
	}
	return repos
}

func (a *App) initServices(r *repositories, cfg *config.Config) *services {
	storage := service.NewStorageService(&cfg.Storage)
	analysis := service.NewAnalysisService(r.user, r.test, r.test, r.question, r.cache, cfg.Analysis)

	a.RegisterConfigCallback(analysis.ApplyConfig)

	return &services{
		auth:     service.NewAuthService(r.user, r.admin, &cfg.JWT),
		analysis: analysis,
		test:     service.NewTestService(r.question, r.test, r.user, analysis),
		admin:    service.NewAdminService(r.user, r.test, analysis, storage),
		storage:  storage,
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		test:      controller.NewTestController(s.test),
		result:    controller.NewResultController(s.analysis),
		admin:     controller.NewAdminController(s.admin),
		dimension: controller.NewDimensionController(),
		health:    controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// seed 写入默认管理员和题库，均只在表为空时生效
func (a *App) seed(cfg *config.Config) {
	if err := database.SeedDefaultAdmin(a.DB, cfg.Admin); err != nil {
		logger.Log.Error("Failed to seed default admin", zap.Error(err))
	}

	if cfg.CatalogFile == "" {
		return
	}
	questions, err := database.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		logger.Log.Error("Failed to load catalog file", zap.String("file", cfg.CatalogFile), zap.Error(err))
		return
	}
	if _, err := database.SeedCatalog(a.DB, questions); err != nil {
		logger.Log.Error("Failed to seed catalog", zap.Error(err))
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	app.seed(cfg)

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时分析结果每次实时计算
		logger.Log.Warn("Redis unavailable, analysis cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("task-maturity-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.Watch(watchCtx, configFile, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
