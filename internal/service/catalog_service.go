package service

import (
	"vendshop/internal/model"
	"vendshop/internal/repository"
	"vendshop/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductUpdate carries a partial product edit; nil fields stay untouched
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	StockData   *[]string        `json:"stock_data"`
	Category    *string          `json:"category"`
}

// CatalogService covers the admin surface: products, slides, settings, user
// management and the two moderation flows. None of it gates the purchase path.
type CatalogService interface {
	CreateProduct(product *model.Product) error
	UpdateProduct(id uuid.UUID, update *ProductUpdate) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error

	GetSettings() (*model.Settings, error)
	UpdateSettings(depositWorld string) (*model.Settings, error)

	GetSlides(activeOnly bool) ([]model.Slide, error)
	CreateSlide(slide *model.Slide) error
	UpdateSlide(id uuid.UUID, update *model.Slide) (*model.Slide, error)
	DeleteSlide(id uuid.UUID) error

	GetUsers() ([]model.UserResponse, error)
	SetUserBanned(id uuid.UUID, banned bool) (*model.User, error)

	GetAllPurchases() ([]model.Purchase, error)
	GetPendingPurchases() ([]model.Purchase, error)
	ReviewPurchase(id uuid.UUID, status model.PurchaseStatus) (*model.Purchase, error)
	GetAllTransactions() ([]model.Transaction, error)

	SubmitPendingProduct(userID uuid.UUID, userEmail string, pending *model.PendingProduct) error
	GetPendingProducts() ([]model.PendingProduct, error)
	ApprovePendingProduct(id uuid.UUID, stockData []string, adminNote string) (*model.Product, error)
	RejectPendingProduct(id uuid.UUID, adminNote string) (*model.PendingProduct, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	slideRepo    repository.SlideRepository
	settingsRepo repository.SettingsRepository
	userRepo     repository.UserRepository
	purchaseRepo repository.PurchaseRepository
	txRepo       repository.TransactionRepository
	pendingRepo  repository.PendingProductRepository
	db           *gorm.DB
	locks        *KeyLock
	wsHub        *ws.Hub
	log          *zap.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	slideRepo repository.SlideRepository,
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
	txRepo repository.TransactionRepository,
	pendingRepo repository.PendingProductRepository,
	db *gorm.DB,
	locks *KeyLock,
	hub *ws.Hub,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		slideRepo:    slideRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
		txRepo:       txRepo,
		pendingRepo:  pendingRepo,
		db:           db,
		locks:        locks,
		wsHub:        hub,
		log:          log,
	}
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	if product.Name == "" {
		return badRequest("Product name is required")
	}
	if !product.Price.IsPositive() {
		return badRequest("Price must be positive")
	}
	if product.Category == "" {
		product.Category = "general"
	}
	if product.StockData == nil {
		product.StockData = []string{}
	}

	if err := s.productRepo.Create(product); err != nil {
		s.log.Error("product create failed", zap.Error(err))
		return internal("Failed to create product")
	}

	s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"action":     "product_created",
		"product_id": product.ID,
		"name":       product.Name,
		"new_stock":  product.Stock(),
	})
	return nil
}

// UpdateProduct applies a partial edit under the same per-product lock the
// purchase engine uses, so an admin stock rewrite never clobbers a sale.
func (s *catalogService) UpdateProduct(id uuid.UUID, update *ProductUpdate) (*model.Product, error) {
	unlock := s.locks.Lock("product:" + id.String())
	defer unlock()

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Failed to update product")
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		if !update.Price.IsPositive() {
			return nil, badRequest("Price must be positive")
		}
		product.Price = *update.Price
	}
	if update.Image != nil {
		product.Image = *update.Image
	}
	if update.StockData != nil {
		product.StockData = *update.StockData
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	product.Version++

	if err := s.productRepo.Update(product); err != nil {
		s.log.Error("product update failed", zap.String("product_id", id.String()), zap.Error(err))
		return nil, internal("Failed to update product")
	}

	s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"action":     "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
		"new_stock":  product.Stock(),
	})
	return product, nil
}

// DeleteProduct removes future purchasability only. Purchase rows keep their
// name/price snapshots, so history stays valid.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	unlock := s.locks.Lock("product:" + id.String())
	defer unlock()

	if err := s.productRepo.Delete(id); err != nil {
		return internal("Failed to delete product")
	}
	return nil
}

func (s *catalogService) GetSettings() (*model.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, internal("Failed to fetch settings")
	}
	return settings, nil
}

func (s *catalogService) UpdateSettings(depositWorld string) (*model.Settings, error) {
	if depositWorld == "" {
		return nil, badRequest("Deposit World is required")
	}
	settings, err := s.settingsRepo.Update(depositWorld)
	if err != nil {
		return nil, internal("Failed to update settings")
	}
	return settings, nil
}

func (s *catalogService) GetSlides(activeOnly bool) ([]model.Slide, error) {
	return s.slideRepo.FindAll(activeOnly)
}

func (s *catalogService) CreateSlide(slide *model.Slide) error {
	if errs := validateStruct(slide); errs != "" {
		return badRequest(errs)
	}
	if err := s.slideRepo.Create(slide); err != nil {
		return internal("Failed to create slide")
	}
	return nil
}

func (s *catalogService) UpdateSlide(id uuid.UUID, update *model.Slide) (*model.Slide, error) {
	slide, err := s.slideRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Slide not found")
		}
		return nil, internal("Failed to update slide")
	}

	slide.Title = update.Title
	slide.Subtitle = update.Subtitle
	slide.ImageURL = update.ImageURL
	slide.CtaLabel = update.CtaLabel
	slide.CtaHref = update.CtaHref
	slide.Order = update.Order
	slide.IsActive = update.IsActive

	if errs := validateStruct(slide); errs != "" {
		return nil, badRequest(errs)
	}
	if err := s.slideRepo.Update(slide); err != nil {
		return nil, internal("Failed to update slide")
	}
	return slide, nil
}

func (s *catalogService) DeleteSlide(id uuid.UUID) error {
	deleted, err := s.slideRepo.Delete(id)
	if err != nil {
		return internal("Failed to delete slide")
	}
	if !deleted {
		return notFound("Slide not found")
	}
	return nil
}

func (s *catalogService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, internal("Failed to fetch users")
	}
	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *catalogService) SetUserBanned(id uuid.UUID, banned bool) (*model.User, error) {
	updated, err := s.userRepo.UpdateBanned(id, banned)
	if err != nil {
		return nil, internal("Failed to update user")
	}
	if !updated {
		return nil, notFound("User not found")
	}
	s.log.Info("user ban state changed", zap.String("user_id", id.String()), zap.Bool("banned", banned))
	return s.userRepo.FindByID(id)
}

func (s *catalogService) GetAllPurchases() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}

func (s *catalogService) GetPendingPurchases() ([]model.Purchase, error) {
	return s.purchaseRepo.FindPending()
}

// ReviewPurchase flips the advisory status. Delivery already happened at
// purchase time; nothing reads this flag on the buy path.
func (s *catalogService) ReviewPurchase(id uuid.UUID, status model.PurchaseStatus) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.UpdateStatus(id, status)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Purchase not found")
		}
		return nil, internal("Failed to update purchase")
	}
	return purchase, nil
}

func (s *catalogService) GetAllTransactions() ([]model.Transaction, error) {
	return s.txRepo.FindAll()
}

func (s *catalogService) SubmitPendingProduct(userID uuid.UUID, userEmail string, pending *model.PendingProduct) error {
	if pending.Name == "" {
		return badRequest("Product name is required")
	}
	if !pending.Price.IsPositive() {
		return badRequest("Price must be positive")
	}
	if pending.Category == "" {
		return badRequest("Category is required")
	}

	pending.UserID = userID
	pending.UserEmail = userEmail
	pending.Status = model.PurchasePending
	pending.StockData = []string{}

	if err := s.pendingRepo.Create(pending); err != nil {
		return internal("Failed to submit product")
	}
	return nil
}

func (s *catalogService) GetPendingProducts() ([]model.PendingProduct, error) {
	return s.pendingRepo.FindAll()
}

// ApprovePendingProduct turns a suggestion into a live product with the stock
// the admin supplies. Both writes commit together.
func (s *catalogService) ApprovePendingProduct(id uuid.UUID, stockData []string, adminNote string) (*model.Product, error) {
	if len(stockData) == 0 {
		return nil, badRequest("At least one stock item is required")
	}

	pending, err := s.pendingRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Pending product not found")
		}
		return nil, internal("Failed to approve product")
	}
	if pending.Status != model.PurchasePending {
		return nil, badRequest("Submission has already been reviewed")
	}

	product := &model.Product{
		Name:        pending.Name,
		Description: pending.Description,
		Price:       pending.Price,
		Image:       pending.Image,
		Category:    pending.Category,
		StockData:   stockData,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		pending.Status = model.PurchaseApproved
		pending.AdminNote = adminNote
		pending.StockData = stockData
		return tx.Save(pending).Error
	})
	if err != nil {
		s.log.Error("pending product approval failed", zap.String("pending_id", id.String()), zap.Error(err))
		return nil, internal("Failed to approve product")
	}

	return product, nil
}

func (s *catalogService) RejectPendingProduct(id uuid.UUID, adminNote string) (*model.PendingProduct, error) {
	pending, err := s.pendingRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Pending product not found")
		}
		return nil, internal("Failed to reject product")
	}
	if pending.Status != model.PurchasePending {
		return nil, badRequest("Submission has already been reviewed")
	}

	pending.Status = model.PurchaseRejected
	pending.AdminNote = adminNote
	if err := s.pendingRepo.Update(pending); err != nil {
		return nil, internal("Failed to reject product")
	}
	return pending, nil
}
