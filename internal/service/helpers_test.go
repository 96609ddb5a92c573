package service

import (
	"testing"

	"vendshop/internal/model"
	"vendshop/internal/repository"
	"vendshop/internal/ws"
	"vendshop/pkg/mailer"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB

	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	txRepo       repository.TransactionRepository

	purchases PurchaseService
	wallet    WalletService
	auth      AuthService
	catalog   CatalogService
	chat      ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	// A fresh connection to :memory: is a fresh database, so the pool must
	// stay on a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal("Failed to access sql.DB:", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Purchase{},
		&model.Transaction{},
		&model.Settings{},
		&model.ChatMessage{},
		&model.Slide{},
		&model.PendingProduct{},
	); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	log := zap.NewNop()
	hub := ws.NewHub()
	go hub.Run()

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	chatRepo := repository.NewChatRepo(db)
	slideRepo := repository.NewSlideRepo(db)
	pendingRepo := repository.NewPendingProductRepo(db)

	locks := NewKeyLock()
	mail := mailer.NewService("", "", "", "", log)

	return &testEnv{
		db:           db,
		userRepo:     userRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		txRepo:       txRepo,
		purchases:    NewPurchaseService(userRepo, productRepo, purchaseRepo, txRepo, db, locks, hub, log),
		wallet:       NewWalletService(userRepo, txRepo, db, locks, log),
		auth:         NewAuthService(userRepo, mail, "admin@growvend.com", "http://localhost:3000", log),
		catalog:      NewCatalogService(productRepo, slideRepo, settingsRepo, userRepo, purchaseRepo, txRepo, pendingRepo, db, locks, hub, log),
		chat:         NewChatService(chatRepo, userRepo, hub, log),
	}
}

func (e *testEnv) createUser(t *testing.T, email, balance string, banned bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:    email,
		Balance:  decimal.RequireFromString(balance),
		IsBanned: banned,
	}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatal("Failed to hash password:", err)
	}
	if err := e.userRepo.Create(user); err != nil {
		t.Fatal("Failed to create user:", err)
	}
	return user
}

func (e *testEnv) createProduct(t *testing.T, name, price string, stock []string) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		StockData: stock,
		Category:  "general",
	}
	if err := e.productRepo.Create(product); err != nil {
		t.Fatal("Failed to create product:", err)
	}
	return product
}

// statusOf asserts err is a service error and returns its HTTP status
func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	return HTTPStatus(err)
}
