package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered marketplace account
type User struct {
	BaseModel
	Email            string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password         string          `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Balance          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	IsAdmin          bool            `gorm:"default:false" json:"is_admin"`
	IsBanned         bool            `gorm:"default:false" json:"is_banned"`
	GrowID           *string         `gorm:"type:varchar(20);uniqueIndex" json:"grow_id"`
	ResetToken       *string         `gorm:"type:varchar(64);index" json:"-"`
	ResetTokenExpiry *time.Time      `json:"-"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	IsAdmin   bool            `json:"is_admin"`
	IsBanned  bool            `json:"is_banned"`
	GrowID    *string         `json:"grow_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Balance:   u.Balance,
		IsAdmin:   u.IsAdmin,
		IsBanned:  u.IsBanned,
		GrowID:    u.GrowID,
		CreatedAt: u.CreatedAt,
	}
}
