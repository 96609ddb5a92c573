package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"vendshop/internal/config"
	"vendshop/internal/handler"
	"vendshop/internal/middleware"
	"vendshop/internal/model"
	"vendshop/internal/repository"
	"vendshop/internal/service"
	"vendshop/internal/ws"
	"vendshop/pkg/database"
	"vendshop/pkg/mailer"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Purchase{},
		&model.Transaction{},
		&model.Settings{},
		&model.ChatMessage{},
		&model.Slide{},
		&model.PendingProduct{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	chatRepo := repository.NewChatRepo(db)
	slideRepo := repository.NewSlideRepo(db)
	pendingRepo := repository.NewPendingProductRepo(db)

	locks := service.NewKeyLock()
	mail := mailer.NewService(cfg.MailgunAPIKey, cfg.MailgunDomain, cfg.MailgunSenderEmail, cfg.MailgunSenderName, zlog)

	authService := service.NewAuthService(userRepo, mail, cfg.AdminEmail, cfg.AppBaseURL, zlog)
	purchaseService := service.NewPurchaseService(userRepo, productRepo, purchaseRepo, txRepo, db, locks, wsHub, zlog)
	walletService := service.NewWalletService(userRepo, txRepo, db, locks, zlog)
	catalogService := service.NewCatalogService(productRepo, slideRepo, settingsRepo, userRepo, purchaseRepo, txRepo, pendingRepo, db, locks, wsHub, zlog)
	chatService := service.NewChatService(chatRepo, userRepo, wsHub, zlog)

	authHandler := handler.NewAuthHandler(authService)
	storeHandler := handler.NewStoreHandler(purchaseService)
	walletHandler := handler.NewWalletHandler(walletService)
	chatHandler := handler.NewChatHandler(chatService)
	adminHandler := handler.NewAdminHandler(catalogService, walletService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "VendShop API v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	api.Get("/products", storeHandler.GetProducts)
	api.Get("/slides", adminHandler.GetSlides(true))
	api.Get("/settings", adminHandler.GetSettings)

	// ============ AUTHENTICATED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/products/:id/purchase", storeHandler.Purchase)
	protected.Get("/purchases", storeHandler.GetPurchases)
	protected.Get("/transactions", storeHandler.GetTransactions)
	protected.Post("/wallet/topup", walletHandler.TopUp)
	protected.Post("/wallet/growid", walletHandler.SetGrowID)
	protected.Get("/chat", chatHandler.GetMessages)
	protected.Post("/chat", chatHandler.PostMessage)
	protected.Post("/pending-products", adminHandler.SubmitPendingProduct)

	// ============ ADMIN ROUTES ============
	admin := protected.Group("/admin", middleware.RequireAdmin())

	admin.Get("/users", adminHandler.GetUsers)
	admin.Patch("/users/:id/ban", adminHandler.BanUser)
	admin.Post("/users/:id/balance", adminHandler.AddBalance)
	admin.Get("/users/:id/ledger", adminHandler.UserLedger)

	admin.Post("/products", adminHandler.CreateProduct)
	admin.Patch("/products/:id", adminHandler.UpdateProduct)
	admin.Delete("/products/:id", adminHandler.DeleteProduct)

	admin.Get("/purchases", adminHandler.GetPurchases)
	admin.Get("/purchases/pending", adminHandler.GetPendingPurchases)
	admin.Patch("/purchases/:id/approve", adminHandler.ApprovePurchase)
	admin.Patch("/purchases/:id/reject", adminHandler.RejectPurchase)
	admin.Get("/transactions", adminHandler.GetTransactions)

	admin.Get("/slides", adminHandler.GetSlides(false))
	admin.Post("/slides", adminHandler.CreateSlide)
	admin.Patch("/slides/:id", adminHandler.UpdateSlide)
	admin.Delete("/slides/:id", adminHandler.DeleteSlide)

	admin.Patch("/settings", adminHandler.UpdateSettings)

	admin.Get("/pending-products", adminHandler.GetPendingProducts)
	admin.Patch("/pending-products/:id/approve", adminHandler.ApprovePendingProduct)
	admin.Patch("/pending-products/:id/reject", adminHandler.RejectPendingProduct)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
