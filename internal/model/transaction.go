package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxPurchase TransactionType = "purchase"
	TxTopup    TransactionType = "topup"
	TxAdminAdd TransactionType = "admin_add"
	TxRefund   TransactionType = "refund"
)

// Transaction is an append-only ledger entry for a balance-affecting event.
// Amount is always positive; the sign is implied by Type.
type Transaction struct {
	BaseModel
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description string          `gorm:"type:text;not null" json:"description"`
}

// SignedAmount applies the sign implied by the transaction type. Summing
// signed amounts for a user reconciles with the user's current balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TxPurchase {
		return t.Amount.Neg()
	}
	return t.Amount
}
