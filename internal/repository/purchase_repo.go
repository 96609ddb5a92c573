package repository

import (
	"vendshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindByUser(userID uuid.UUID) ([]model.Purchase, error)
	FindAll() ([]model.Purchase, error)
	FindPending() ([]model.Purchase, error)
	UpdateStatus(id uuid.UUID, status model.PurchaseStatus) (*model.Purchase, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) FindByUser(userID uuid.UUID) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindPending() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("status = ?", model.PurchasePending).Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) UpdateStatus(id uuid.UUID, status model.PurchaseStatus) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	purchase.Status = status
	if err := r.db.Model(&purchase).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}
