package app

import (
	"hrd_survey_backend/docs"
	"hrd_survey_backend/internal/config"
	"hrd_survey_backend/internal/middleware"
	"hrd_survey_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 공개 라우트 (로그인 불필요)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 응답자용 공개 설문 접근 (접속 코드 기반, 인증 없음)
	publicAPI := router.Group("/api/public")
	{
		publicAPI.GET("/surveys/:code", c.survey.GetPublic)
		publicAPI.POST("/surveys/:code/responses", c.response.Submit)
	}

	// 2. 관리자 라우트 (JWT 필요)
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/dashboard", c.dashboard.Summary)

		courses := authGroup.Group("/courses")
		{
			courses.POST("", c.course.Create)
			courses.GET("", c.course.List)
			courses.GET("/:id", c.course.Get)
			courses.PUT("/:id", c.course.Update)
			courses.DELETE("/:id", c.course.Delete)
			courses.POST("/:id/analysis", c.stats.AnalyzeCourse)
		}

		surveys := authGroup.Group("/surveys")
		{
			surveys.POST("", c.survey.Create)
			surveys.GET("", c.survey.List)
			surveys.GET("/:id", c.survey.Get)
			surveys.PUT("/:id", c.survey.Update)
			surveys.DELETE("/:id", c.survey.Delete)
			surveys.POST("/:id/activate", c.survey.Activate)
			surveys.POST("/:id/close", c.survey.Close)

			surveys.GET("/:id/questions", c.question.List)
			surveys.PUT("/:id/questions", c.question.Save)
			surveys.POST("/:id/questions/generate", c.question.Generate)

			surveys.GET("/:id/responses", c.response.ListBySurvey)
			surveys.GET("/:id/stats", c.stats.GetSurveyStats)
			surveys.POST("/:id/analysis", c.stats.AnalyzeSurvey)
			surveys.GET("/:id/report", c.report.GetReport)
			surveys.GET("/:id/export", c.report.ExportCSV)
			surveys.POST("/:id/export/archive", c.report.ArchiveExport)
		}
	}
}
