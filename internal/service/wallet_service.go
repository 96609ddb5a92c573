package service

import (
	"fmt"
	"strings"

	"vendshop/internal/model"
	"vendshop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LedgerSummary reconciles a user's balance against the signed sum of their
// transaction history
type LedgerSummary struct {
	UserID     uuid.UUID       `json:"user_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Reconciled bool            `json:"reconciled"`
}

type WalletService interface {
	TopUp(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	AdminCredit(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	SetGrowID(userID uuid.UUID, rawGrowID string) (*model.User, error)
	LedgerSummary(userID uuid.UUID) (*LedgerSummary, error)
}

type walletService struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	locks           *KeyLock
	log             *zap.Logger
}

func NewWalletService(
	uRepo repository.UserRepository,
	tRepo repository.TransactionRepository,
	db *gorm.DB,
	locks *KeyLock,
	log *zap.Logger,
) WalletService {
	return &walletService{
		userRepo:        uRepo,
		transactionRepo: tRepo,
		db:              db,
		locks:           locks,
		log:             log,
	}
}

// TopUp credits the user's own wallet
func (s *walletService) TopUp(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	desc := fmt.Sprintf("Topped up wallet with $%s", amount.StringFixed(2))
	return s.credit(userID, amount, model.TxTopup, desc)
}

// AdminCredit credits any user's wallet. The caller must already be verified
// as an admin by the identity middleware.
func (s *walletService) AdminCredit(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	desc := fmt.Sprintf("Admin added $%s to wallet", amount.StringFixed(2))
	return s.credit(userID, amount, model.TxAdminAdd, desc)
}

// credit is the shared balance-increment path: one guarded balance update and
// one ledger row, committed together.
func (s *walletService) credit(userID uuid.UUID, amount decimal.Decimal, txType model.TransactionType, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, badRequest("Invalid amount")
	}

	unlock := s.locks.Lock("user:" + userID.String())
	defer unlock()

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return decimal.Zero, notFound("User not found")
		}
		return decimal.Zero, internal("Failed to add balance")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		credited, err := s.userRepo.CreditBalance(tx, user.ID, amount)
		if err != nil {
			return err
		}
		if !credited {
			return notFound("User not found")
		}
		return s.transactionRepo.Create(tx, &model.Transaction{
			UserID:      user.ID,
			Type:        txType,
			Amount:      amount,
			Description: description,
		})
	})
	if err != nil {
		var svcErr *Error
		if asServiceError(err, &svcErr) {
			return decimal.Zero, svcErr
		}
		s.log.Error("balance credit failed", zap.String("user_id", userID.String()), zap.Error(err))
		return decimal.Zero, internal("Failed to add balance")
	}

	newBalance := user.Balance.Add(amount)
	s.log.Info("balance credited",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(txType)),
		zap.String("amount", amount.StringFixed(2)),
	)
	return newBalance, nil
}

// SetGrowID binds a normalized GrowID to the user, enforcing global 1:1
// ownership. Re-claiming your own GrowID is idempotent.
func (s *walletService) SetGrowID(userID uuid.UUID, rawGrowID string) (*model.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(rawGrowID))

	unlock := s.locks.LockMany("growid:"+normalized, "user:"+userID.String())
	defer unlock()

	holder, err := s.userRepo.FindByGrowID(normalized)
	if err != nil && !isNotFound(err) {
		return nil, internal("Failed to set GrowID")
	}
	if holder != nil && holder.ID != userID {
		return nil, badRequest("This GrowID is already taken by another user")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to set GrowID")
	}

	// The unique index on grow_id backstops this write for multi-process
	// deployments where the keyed lock does not serialize.
	if err := s.userRepo.UpdateGrowID(userID, normalized); err != nil {
		s.log.Error("growid update failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internal("Failed to set GrowID")
	}

	user.GrowID = &normalized
	return user, nil
}

// LedgerSummary recomputes the signed transaction sum for an audit check
func (s *walletService) LedgerSummary(userID uuid.UUID) (*LedgerSummary, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to compute ledger summary")
	}

	sum, err := s.transactionRepo.SumSignedByUser(userID)
	if err != nil {
		return nil, internal("Failed to compute ledger summary")
	}

	return &LedgerSummary{
		UserID:     user.ID,
		Balance:    user.Balance,
		LedgerSum:  sum,
		Reconciled: user.Balance.Equal(sum),
	}, nil
}
