package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrd_survey_backend/internal/config"
	"hrd_survey_backend/internal/controller"
	"hrd_survey_backend/internal/repository"
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/pkg/database"
	"hrd_survey_backend/pkg/logger"
	"hrd_survey_backend/pkg/monitoring"
	"hrd_survey_backend/pkg/security"
	"hrd_survey_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	survey   *repository.SurveyRepository
	question *repository.QuestionRepository
	response *repository.ResponseRepository
}

type services struct {
	auth      *service.AuthService
	course    *service.CourseService
	survey    *service.SurveyService
	question  *service.QuestionService
	response  *service.ResponseService
	stats     *service.StatsService
	ai        *service.AIService
	analysis  *service.AnalysisService
	report    *service.ReportService
	export    *service.ExportService
	storage   *service.StorageService
	dashboard *service.DashboardService
}

type controllers struct {
	auth      *controller.AuthController
	course    *controller.CourseController
	survey    *controller.SurveyController
	question  *controller.QuestionController
	response  *controller.ResponseController
	stats     *controller.StatsController
	report    *controller.ReportController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		survey:   repository.NewSurveyRepository(db),
		question: repository.NewQuestionRepository(db),
		response: repository.NewResponseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	store := service.NewSurveyDataStore(repos.survey, repos.course, repos.question, repos.response)

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course)
	s.survey = service.NewSurveyService(repos.survey, repos.course, repos.question)
	s.ai = service.NewAIService(cfg.AI)
	s.question = service.NewQuestionService(repos.question, repos.survey, repos.course, s.ai)
	s.stats = service.NewStatsService(store, rdb)
	s.response = service.NewResponseService(repos.response, repos.survey, repos.question, s.stats)
	s.analysis = service.NewAnalysisService(store, s.stats, s.ai)
	s.report = service.NewReportService(store, s.stats)
	s.export = service.NewExportService(store, s.storage)
	s.dashboard = service.NewDashboardService(repos.course, repos.survey, repos.response)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		course:    controller.NewCourseController(s.course),
		survey:    controller.NewSurveyController(s.survey),
		question:  controller.NewQuestionController(s.question),
		response:  controller.NewResponseController(s.response),
		stats:     controller.NewStatsController(s.stats, s.analysis),
		report:    controller.NewReportController(s.report, s.export),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 분산 추적 미들웨어
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ApplyConfig 설정 핫리로드 시 교체 가능한 구성요소에 새 설정을 반영한다.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	if a.services != nil && a.services.ai != nil {
		a.services.ai.SetConfig(cfg.AI)
	}
	logger.Log.Info("Config reloaded", zap.String("ai_model", cfg.AI.Model))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(&cfg.Database, cfg.MigrateOnBoot())
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 통계 캐시는 선택 사항이므로 Redis 없이도 기동한다
		logger.Log.Warn("Failed to initialize redis, stats cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hrd-survey", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
