package provider

import (
	"github.com/healer-next/internal/authz"
	"github.com/healer-next/internal/cache"
	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/logger"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/queue"
	"github.com/healer-next/internal/repository"
	"github.com/healer-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	EmailVerifyCodeRepo repository.EmailVerifyCodeRepository
	PharmacyRepo        repository.PharmacyRepository
	MedicineRepo        repository.MedicineRepository
	OrderRepo           repository.OrderRepository
	DriverRepo          repository.DriverRepository

	// Services
	AuthzService      *authz.Service
	UserAuthService   *service.UserAuthService
	EmailService      *service.EmailService
	PharmacyService   *service.PharmacyService
	MedicineService   *service.MedicineService
	OrderService      *service.OrderService
	DriverService     *service.DriverService
	MembershipService *service.MembershipService
	PaymentService    *service.PaymentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.EmailVerifyCodeRepo = repository.NewEmailVerifyCodeRepository(db)
	c.PharmacyRepo = repository.NewPharmacyRepository(db)
	c.MedicineRepo = repository.NewMedicineRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DriverRepo = repository.NewDriverRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.EmailVerifyCodeRepo, c.EmailService)
	c.PharmacyService = service.NewPharmacyService(c.PharmacyRepo)
	c.MedicineService = service.NewMedicineService(c.MedicineRepo, c.PharmacyRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.UserRepo, c.PharmacyRepo, c.MedicineRepo, c.DriverRepo, c.QueueClient)
	c.DriverService = service.NewDriverService(c.DriverRepo, c.UserRepo)
	c.MembershipService = service.NewMembershipService(c.Config, c.UserRepo)
	c.PaymentService = service.NewPaymentService(c.Config, c.OrderRepo)
}
