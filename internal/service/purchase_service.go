package service

import (
	"fmt"
	"math"

	"vendshop/internal/model"
	"vendshop/internal/repository"
	"vendshop/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PurchaseResult is the successful outcome of a buy request
type PurchaseResult struct {
	Purchases []model.Purchase `json:"purchases"`
	StockData []string         `json:"stockData"`
	Quantity  int              `json:"quantity"`
}

type PurchaseService interface {
	Purchase(userID, productID uuid.UUID, requestedQty float64) (*PurchaseResult, error)
	GetProducts() ([]model.Product, error)
	GetUserPurchases(userID uuid.UUID) ([]model.Purchase, error)
	GetUserTransactions(userID uuid.UUID) ([]model.Transaction, error)
}

type purchaseService struct {
	userRepo        repository.UserRepository
	productRepo     repository.ProductRepository
	purchaseRepo    repository.PurchaseRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	locks           *KeyLock
	wsHub           *ws.Hub
	log             *zap.Logger
}

func NewPurchaseService(
	uRepo repository.UserRepository,
	pRepo repository.ProductRepository,
	purRepo repository.PurchaseRepository,
	tRepo repository.TransactionRepository,
	db *gorm.DB,
	locks *KeyLock,
	hub *ws.Hub,
	log *zap.Logger,
) PurchaseService {
	return &purchaseService{
		userRepo:        uRepo,
		productRepo:     pRepo,
		purchaseRepo:    purRepo,
		transactionRepo: tRepo,
		db:              db,
		locks:           locks,
		wsHub:           hub,
		log:             log,
	}
}

// Purchase converts a buy request into one consistent multi-record state
// change: FIFO-cut the stock list, debit the balance, write one Purchase row
// per delivered unit and a single ledger Transaction. Every precondition is
// checked before any write; a failed write rolls the whole unit back.
func (s *purchaseService) Purchase(userID, productID uuid.UUID, requestedQty float64) (*PurchaseResult, error) {
	// Quantities below 1 (including fractional) are clamped up to 1, never
	// rejected. Existing clients depend on this. Values beyond int range are
	// capped instead of converted (the conversion would overflow), so the
	// stock-length check still sees the real magnitude and rejects.
	quantity := 1
	switch {
	case requestedQty >= float64(math.MaxInt):
		quantity = math.MaxInt
	case requestedQty > 1:
		quantity = int(math.Floor(requestedQty))
	}

	unlock := s.locks.LockMany("product:"+productID.String(), "user:"+userID.String())
	defer unlock()

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("User not found")
		}
		return nil, internal("Purchase failed")
	}
	if user.IsBanned {
		return nil, forbidden("Your account has been banned")
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Purchase failed")
	}

	if product.Stock() == 0 {
		return nil, badRequest("Product is out of stock")
	}
	if product.Stock() < quantity {
		return nil, badRequest(fmt.Sprintf("Only %d items available", product.Stock()))
	}

	totalPrice := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if user.Balance.LessThan(totalPrice) {
		return nil, badRequest("Insufficient balance")
	}

	delivered := make([]string, quantity)
	copy(delivered, product.StockData[:quantity])
	remaining := product.StockData[quantity:]

	purchases := make([]model.Purchase, 0, quantity)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		swapped, err := s.productRepo.SwapStock(tx, product.ID, remaining, product.Version)
		if err != nil {
			return err
		}
		if !swapped {
			// Another writer changed the stock list since our read
			return badRequest("Stock changed, please try again")
		}

		debited, err := s.userRepo.DebitBalance(tx, user.ID, totalPrice)
		if err != nil {
			return err
		}
		if !debited {
			return badRequest("Insufficient balance")
		}

		for _, unit := range delivered {
			purchase := model.Purchase{
				UserID:      user.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				StockData:   unit,
				Status:      model.PurchasePending,
			}
			if err := s.purchaseRepo.Create(tx, &purchase); err != nil {
				return err
			}
			purchases = append(purchases, purchase)
		}

		return s.transactionRepo.Create(tx, &model.Transaction{
			UserID:      user.ID,
			Type:        model.TxPurchase,
			Amount:      totalPrice,
			Description: fmt.Sprintf("Purchased %dx %s", quantity, product.Name),
		})
	})
	if err != nil {
		var svcErr *Error
		if ok := asServiceError(err, &svcErr); ok {
			return nil, svcErr
		}
		s.log.Error("purchase transaction failed",
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return nil, internal("Purchase failed")
	}

	s.log.Info("purchase completed",
		zap.String("user_id", user.ID.String()),
		zap.String("product", product.Name),
		zap.Int("quantity", quantity),
		zap.String("total", totalPrice.StringFixed(2)),
	)

	s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"action":     "purchase",
		"product_id": product.ID,
		"name":       product.Name,
		"new_stock":  len(remaining),
	})

	return &PurchaseResult{
		Purchases: purchases,
		StockData: delivered,
		Quantity:  quantity,
	}, nil
}

func (s *purchaseService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *purchaseService) GetUserPurchases(userID uuid.UUID) ([]model.Purchase, error) {
	return s.purchaseRepo.FindByUser(userID)
}

func (s *purchaseService) GetUserTransactions(userID uuid.UUID) ([]model.Transaction, error) {
	return s.transactionRepo.FindByUser(userID)
}
