package model

import "time"

// SettingsID is the key of the single settings row, created lazily on first read.
const SettingsID = "global"

// Settings is a singleton holding store-wide configuration
type Settings struct {
	ID           string    `gorm:"type:varchar(16);primary_key" json:"id"`
	DepositWorld string    `gorm:"type:varchar(255);not null;default:''" json:"deposit_world"`
	UpdatedAt    time.Time `json:"updated_at"`
}
