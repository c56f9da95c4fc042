package router

import (
	"time"

	"chainmove/config"
	"chainmove/internal/domain"
	"chainmove/internal/handler"
	"chainmove/internal/middleware"
	"chainmove/internal/repository"
	"chainmove/internal/service"
	"chainmove/internal/ws"
	"chainmove/pkg/cloudinary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.AppBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	poolRepo := repository.NewPoolRepository(db)
	contractRepo := repository.NewContractRepository(db)
	paymentRepo := repository.NewDriverPaymentRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	poolHub := ws.NewPoolHub()

	// Services
	notifSvc := service.NewNotificationService(notificationRepo, poolRepo)
	authSvc := service.NewAuthService(userRepo, &cfg.JWT)
	poolSvc := service.NewPoolService(db, poolRepo, settingRepo, notifSvc, poolHub)
	contractSvc := service.NewContractService(db, contractRepo, paymentRepo, creditRepo, settingRepo, notifSvc)
	walletSvc := service.NewWalletService(db, userRepo, transactionRepo, creditRepo, withdrawalRepo, notifSvc)
	settingsSvc := service.NewSettingsService(settingRepo)
	vehicleSvc := service.NewVehicleService(vehicleRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	poolHandler := handler.NewPoolHandler(poolSvc)
	driverHandler := handler.NewDriverHandler(cfg, contractSvc, authSvc)
	walletHandler := handler.NewWalletHandler(cfg, walletSvc, authSvc, poolSvc)
	vehicleHandler := handler.NewVehicleHandler(vehicleSvc, cloud)
	adminHandler := handler.NewAdminHandler(userRepo, poolRepo, contractRepo, transactionRepo, settingsSvc, contractSvc, walletSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	webhookHandler := handler.NewPaystackWebhookHandler(cfg, contractSvc, walletSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole(domain.RoleAdmin)
	driverMw := middleware.RequireRole(domain.RoleDriver)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		pools := api.Group("/pools")
		pools.Use(authMw)
		{
			pools.GET("", poolHandler.List)
			pools.GET("/:id", poolHandler.Get)
			investorMw := middleware.RequireRole(domain.RoleInvestor, domain.RoleAdmin)
			pools.POST("", investorMw, poolHandler.Create)
			pools.POST("/:id/invest", investorMw, poolHandler.Invest)
		}

		wallet := api.Group("/wallet")
		wallet.Use(authMw)
		{
			wallet.GET("", walletHandler.Summary)
			wallet.GET("/transactions", walletHandler.Transactions)
			wallet.GET("/credits", walletHandler.Credits)
			wallet.GET("/investments", walletHandler.Investments)
			wallet.POST("/fund", walletHandler.InitializeFunding)
			wallet.POST("/withdrawals", walletHandler.RequestWithdrawal)
			wallet.GET("/withdrawals", walletHandler.ListWithdrawals)
		}

		driver := api.Group("/driver")
		driver.Use(authMw, driverMw)
		{
			driver.GET("/contract", driverHandler.GetContract)
			driver.GET("/payments", driverHandler.ListPayments)
			driver.POST("/payments/initialize", driverHandler.InitializePayment)
			driver.GET("/payments/verify/:reference", driverHandler.VerifyPayment)
		}

		vehicles := api.Group("/vehicles")
		vehicles.Use(authMw)
		{
			vehicles.GET("", vehicleHandler.List)
			vehicles.GET("/:id", vehicleHandler.Get)
			vehicles.POST("", adminMw, vehicleHandler.Create)
			vehicles.POST("/:id/image", adminMw, vehicleHandler.UploadImage)
			vehicles.PATCH("/:id/status", adminMw, vehicleHandler.SetStatus)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/role", adminHandler.PromoteUser)
			admin.POST("/contracts", adminHandler.CreateContract)
			admin.GET("/contracts/:id", adminHandler.GetContract)
			admin.GET("/withdrawals", adminHandler.ListPendingWithdrawals)
			admin.PATCH("/withdrawals/:id", adminHandler.SettleWithdrawal)
		}

		api.POST("/webhooks/paystack", webhookHandler.Handle)
	}

	r.GET("/ws/pools", ws.UpgradePoolWS(&cfg.JWT, poolHub))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
