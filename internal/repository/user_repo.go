package repository

import (
	"time"

	"vendshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByGrowID(growID string) (*model.User, error)
	FindByResetToken(token string) (*model.User, error)
	FindAll() ([]model.User, error)
	DebitBalance(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (bool, error)
	CreditBalance(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (bool, error)
	UpdateGrowID(id uuid.UUID, growID string) error
	UpdateBanned(id uuid.UUID, banned bool) (bool, error)
	UpdatePassword(id uuid.UUID, hashedPassword string) error
	SetResetToken(id uuid.UUID, token string, expiry time.Time) error
	ClearResetToken(id uuid.UUID) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByGrowID(growID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("grow_id = ?", growID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByResetToken(token string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("reset_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DebitBalance subtracts amount only while the balance stays non-negative.
// Returns false when the guard rejected the update (insufficient funds or
// missing user). Accepts the tx handle so it can join a wider transaction.
func (r *userRepo) DebitBalance(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := tx.Model(&model.User{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepo) CreditBalance(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := tx.Model(&model.User{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepo) UpdateGrowID(id uuid.UUID, growID string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("grow_id", growID).Error
}

func (r *userRepo) UpdateBanned(id uuid.UUID, banned bool) (bool, error) {
	res := r.db.Model(&model.User{}).Where("id = ?", id).Update("is_banned", banned)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepo) UpdatePassword(id uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *userRepo) SetResetToken(id uuid.UUID, token string, expiry time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
}

func (r *userRepo) ClearResetToken(id uuid.UUID) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
}
