package app

import (
	"task_maturity_backend/docs"
	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/middleware"
	"task_maturity_backend/internal/model"
	"task_maturity_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerUserRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/admin/login", c.auth.AdminLogin)
		public.GET("/dimensions", c.dimension.List)
	}
}

func (a *App) registerUserRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	user := router.Group("/api")
	user.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.RoleUser))
	{
		test := user.Group("/test")
		{
			test.GET("/questions", c.test.GetQuestions)
			test.POST("/submit", c.test.Submit)
			test.GET("/status", c.test.GetStatus)
			test.GET("/history", c.test.GetHistory)
		}

		user.GET("/results", c.result.GetMyResult)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.GET("/users/:id/results", c.admin.GetUserResult)
		admin.GET("/users/:id/analysis", c.admin.GetUserAnalysis)
		admin.POST("/users/:id/retest", c.admin.GrantRetest)
		admin.POST("/users/:id/report", c.admin.ExportReport)
		admin.GET("/statistics", c.admin.GetStatistics)
	}
}
