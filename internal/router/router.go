package router

import (
	"fmt"
	"strings"

	"github.com/healer-next/internal/cache"
	"github.com/healer-next/internal/config"
	api "github.com/healer-next/internal/http/handlers/api"
	"github.com/healer-next/internal/logger"
	"github.com/healer-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := api.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "hl"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, try again in %d seconds",
	}
	verifyCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:verify_code", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many code requests, try again in %d seconds",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/send-verify-code", RateLimitMiddleware(redisClient, verifyCodeRule, KeyByIPAndJSONField("email")), handler.SendVerifyCode)
			auth.POST("/register", handler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.Login)
			auth.POST("/verify-email", handler.VerifyEmail)
			auth.POST("/reset-password", handler.ResetPassword)
		}

		// 公开浏览接口
		apiV1.GET("/pharmacies", handler.ListPharmacies)
		apiV1.GET("/pharmacies/:id", handler.GetPharmacy)
		apiV1.GET("/pharmacies/:id/medicines", handler.ListPharmacyMedicines)
		apiV1.GET("/medicines/search", handler.SearchMedicines)
		apiV1.GET("/drivers/:id/reviews", handler.ListDriverReviews)

		// 需鉴权接口，角色策略由 Casbin 判定
		authorized := apiV1.Group("")
		authorized.Use(
			UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
			UserRBACMiddleware(c.AuthzService),
		)
		{
			authorized.GET("/me", handler.GetCurrentUser)
			authorized.PATCH("/me", handler.UpdateCurrentUser)

			// 订单
			authorized.POST("/orders", handler.CreateOrder)
			authorized.GET("/orders", handler.ListOrders)
			authorized.GET("/orders/:id", handler.GetOrder)
			authorized.POST("/orders/:id/cancel", handler.CancelOrder)
			authorized.POST("/orders/:id/review", handler.ReviewDriver)
			authorized.PATCH("/orders/:id/status", handler.UpdateOrderStatus)
			authorized.POST("/orders/:id/assign-driver", handler.AssignDriver)
			authorized.POST("/orders/:id/accept", handler.AcceptOrder)
			authorized.POST("/orders/:id/complete", handler.CompleteDelivery)

			// 在线支付
			authorized.POST("/orders/:id/payment", handler.InitiatePayment)
			authorized.POST("/orders/:id/payment/verify", handler.VerifyPayment)

			// 药房管理
			authorized.GET("/pharmacy", handler.GetMyPharmacy)
			authorized.POST("/pharmacy", handler.CreatePharmacy)
			authorized.PATCH("/pharmacy", handler.UpdatePharmacy)
			authorized.GET("/pharmacy/medicines", handler.ListMyMedicines)
			authorized.POST("/pharmacy/medicines", handler.CreateMedicine)
			authorized.PATCH("/pharmacy/medicines/:id", handler.UpdateMedicine)
			authorized.DELETE("/pharmacy/medicines/:id", handler.DeleteMedicine)

			// 骑手
			authorized.GET("/driver/profile", handler.GetDriverProfile)
			authorized.POST("/driver/profile", handler.RegisterDriverProfile)
			authorized.PATCH("/driver/profile", handler.UpdateDriverProfile)
			authorized.PATCH("/driver/availability", handler.SetDriverAvailability)
			authorized.PATCH("/driver/location", handler.UpdateDriverLocation)
			authorized.GET("/driver/orders/available", handler.ListAvailableOrders)
			authorized.GET("/driver/earnings", handler.GetDriverEarnings)
			authorized.GET("/driver/reviews", handler.GetMyDriverReviews)

			// 会员
			authorized.GET("/membership/plans", handler.GetMembershipPlans)
			authorized.GET("/membership/status", handler.GetMembershipStatus)
			authorized.POST("/membership/subscribe", handler.SubscribeMembership)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
