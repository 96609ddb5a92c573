package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingProduct is a user-submitted catalog suggestion. On approval an admin
// supplies the initial stock list and a real Product is created from it.
type PendingProduct struct {
	BaseModel
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail   string          `gorm:"type:varchar(255);not null" json:"user_email"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Image       string          `gorm:"type:text" json:"image"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Status      PurchaseStatus  `gorm:"type:varchar(10);not null;default:pending" json:"status"`
	AdminNote   string          `gorm:"type:text" json:"admin_note"`
	StockData   []string        `gorm:"serializer:json;type:jsonb" json:"stock_data"`
}
