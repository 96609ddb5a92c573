package model

import "github.com/shopspring/decimal"

// Product is a catalog entry whose stock is an ordered list of sellable
// units (credential strings). len(StockData) is the available quantity and
// units are consumed oldest-first.
type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Image       string          `gorm:"type:text" json:"image"`
	StockData   []string        `gorm:"serializer:json;type:jsonb" json:"stock_data"`
	Category    string          `gorm:"type:varchar(100);not null;default:general" json:"category"`

	// Version guards concurrent stock swaps (optimistic lock)
	Version int64 `gorm:"not null;default:0" json:"-"`
}

// Stock returns the number of undelivered units
func (p *Product) Stock() int {
	return len(p.StockData)
}
