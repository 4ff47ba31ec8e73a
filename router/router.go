package router

import (
	"time"

	"finance-guru/alert"
	"finance-guru/api"
	"finance-guru/config"
	"finance-guru/database"
	_ "finance-guru/docs"
	"finance-guru/middleware"
	"finance-guru/service"
	"finance-guru/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	// CORS 中间件
	r.Use(CORSMiddleware())

	engine := alert.NewEngine(
		store.New(database.DB),
		alert.WithLogger(logger.With().Str("component", "alert").Logger()),
		alert.WithThresholds(cfg.Alerts),
	)
	mailer := service.NewEmailService(&cfg.Email)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg, engine, mailer)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, 15*time.Minute), authHandler.Login)

			// 密码重置
			resetLimit := middleware.RateLimit(5, time.Hour, "重置请求过于频繁，请稍后再试")
			auth.POST("/password/forgot", resetLimit, authHandler.ForgotPassword)
			auth.GET("/password/verify", authHandler.VerifyResetToken)
			auth.POST("/password/reset", resetLimit, authHandler.ResetPassword)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/profile", authHandler.UpdateProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)
			authorized.DELETE("/auth/account", authHandler.DeleteAccount)

			// 收支流水
			transactionHandler := api.NewTransactionHandler(engine)
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// 预算
			budgetHandler := api.NewBudgetHandler(engine)
			budgets := authorized.Group("/budgets")
			{
				budgets.GET("", budgetHandler.List)
				budgets.POST("", budgetHandler.Create)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			// 储蓄目标
			goalHandler := api.NewGoalHandler(engine)
			goals := authorized.Group("/goals")
			{
				goals.GET("", goalHandler.List)
				goals.POST("", goalHandler.Create)
				goals.POST("/:id/contribute", goalHandler.Contribute)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			// 账单
			billHandler := api.NewBillHandler(engine)
			bills := authorized.Group("/bills")
			{
				bills.GET("", billHandler.List)
				bills.POST("", billHandler.Create)
				bills.POST("/:id/pay", billHandler.Pay)
				bills.POST("/:id/unpay", billHandler.Unpay)
				bills.DELETE("/:id", billHandler.Delete)
			}

			// 通知
			notificationHandler := api.NewNotificationHandler()
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.POST("/read", notificationHandler.MarkAllRead)
				notifications.DELETE("/:id", notificationHandler.Delete)
				notifications.DELETE("", notificationHandler.Clear)
			}

			authorized.GET("/dashboard", api.NewDashboardHandler(engine).Get)

			// 导出相关
			exportHandler := api.NewExportHandler(engine)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
