package app

import (
	"futuretech_backend/docs"
	"futuretech_backend/internal/config"
	"futuretech_backend/internal/middleware"
	"futuretech_backend/internal/model"

	"futuretech_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)

	// 奖学金测试
	rg.GET("/questions", c.test.Questions)
	rg.POST("/submit-test", c.test.Submit)
	rg.GET("/get-last-result", c.test.LastResult)
	rg.GET("/user-results", c.test.UserResults)
	rg.GET("/test-result/:id", c.test.Result)

	// 线索
	rg.POST("/save-lead", c.lead.Save)

	// 简历
	rg.POST("/resume/generate", c.resume.Generate)
	rg.GET("/resumes", c.resume.List)
	rg.GET("/resumes/:id", c.resume.Get)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/submissions", c.test.ListSubmissions)
		teacher.GET("/submissions/:id", c.test.Submission)
		teacher.GET("/questions", c.test.BankQuestions)
		teacher.GET("/leads", c.lead.List)
	}
}
