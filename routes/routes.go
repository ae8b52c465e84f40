package routes

import (
	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/controllers"
	_ "github.com/maheshvali1990/Society-maintenance-tracker/docs"
	"github.com/maheshvali1990/Society-maintenance-tracker/middleware"
	"github.com/maheshvali1990/Society-maintenance-tracker/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器，Redis不可用时容器内部会自动降级
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 接口限流
	api.Use(middleware.RateLimitByIP(5, 20))
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	health := controllers.NewHealthCheckController()
	api.GET("/ping", health.Ping)

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 月度对账单
	auth.GET("/statement", controllers.HandlePaymentFunc(container, "getMonthlyStatement"))

	// 住户路由
	auth.Group("/households").GET("", controllers.HandleHouseholdFunc(container, "getHouseholds"))
	auth.Group("/households").GET("/:id", controllers.HandleHouseholdFunc(container, "getHousehold"))
	auth.Group("/households").POST("", controllers.HandleHouseholdFunc(container, "createHousehold"))
	auth.Group("/households").PUT("/:id", controllers.HandleHouseholdFunc(container, "updateHousehold"))
	auth.Group("/households").DELETE("/:id", controllers.HandleHouseholdFunc(container, "deleteHousehold"))

	// 缴费记录路由
	auth.Group("/payments").GET("/:household_id/:year/:month", controllers.HandlePaymentFunc(container, "getPayment"))
	auth.Group("/payments").POST("/:household_id/:year/:month", controllers.HandlePaymentFunc(container, "recordPayment"))

	// 导入路由
	auth.Group("/imports").POST("/chat", controllers.HandleImportFunc(container, "importChatLog"))
	auth.Group("/imports").POST("/receipt/:household_id/:year/:month", controllers.HandleImportFunc(container, "importReceipt"))
}
