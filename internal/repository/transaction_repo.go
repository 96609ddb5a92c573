package repository

import (
	"vendshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindByUser(userID uuid.UUID) ([]model.Transaction, error)
	FindAll() ([]model.Transaction, error)
	SumSignedByUser(userID uuid.UUID) (decimal.Decimal, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindByUser(userID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

// SumSignedByUser folds the user's ledger into one signed total. Purchases
// count negative, every other type positive. The total reconciles with the
// user's current balance when the ledger is intact.
func (r *transactionRepo) SumSignedByUser(userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN -amount ELSE amount END), 0)", model.TxPurchase).
		Scan(&total).Error
	return total, err
}
