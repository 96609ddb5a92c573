package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseApproved PurchaseStatus = "approved"
	PurchaseRejected PurchaseStatus = "rejected"
)

// Purchase records one delivered unit. A quantity-N buy creates N rows, each
// snapshotting the product name and unit price at the time of sale so history
// survives product edits and deletes. Immutable after creation except Status,
// which is advisory moderation metadata and never gates delivery.
type Purchase struct {
	BaseModel
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	StockData   string          `gorm:"type:text;not null" json:"stock_data"`
	Status      PurchaseStatus  `gorm:"type:varchar(10);not null;default:pending" json:"status"`
}
