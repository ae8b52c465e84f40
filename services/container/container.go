package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	adminService services.InterfaceAdminService
	redisService services.InterfaceRedisService

	// 业务服务
	householdService services.InterfaceHouseholdService
	paymentService   services.InterfacePaymentService
	chatService      services.InterfaceChatService
	ocrService       services.InterfaceOCRService
	receiptService   services.InterfaceReceiptService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
// redisClient 可以为 nil，此时账单缓存退化为直查数据库
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}
	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.adminService = services.NewAdminService(c.db, c.config)
	c.redisService = &services.RedisService{Client: c.redis, Ctx: context.Background()}

	// 初始化业务服务
	c.householdService = services.NewHouseholdService(c.db, c.config)
	c.paymentService = services.NewPaymentService(c.db, c.config, c.redisService)
	c.chatService = services.NewChatService(c.config, c.householdService, c.paymentService)
	c.ocrService = services.NewOCRService(c.config)
	c.receiptService = services.NewReceiptService(c.config, c.ocrService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "admin":
		return c.adminService
	case "redis":
		return c.redisService
	case "household":
		return c.householdService
	case "payment":
		return c.paymentService
	case "chat":
		return c.chatService
	case "ocr":
		return c.ocrService
	case "receipt":
		return c.receiptService
	default:
		return nil
	}
}
