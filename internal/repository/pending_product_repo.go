package repository

import (
	"vendshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PendingProductRepository interface {
	Create(pending *model.PendingProduct) error
	FindAll() ([]model.PendingProduct, error)
	FindByID(id uuid.UUID) (*model.PendingProduct, error)
	Update(pending *model.PendingProduct) error
}

type pendingProductRepo struct {
	db *gorm.DB
}

func NewPendingProductRepo(db *gorm.DB) PendingProductRepository {
	return &pendingProductRepo{db}
}

func (r *pendingProductRepo) Create(pending *model.PendingProduct) error {
	return r.db.Create(pending).Error
}

func (r *pendingProductRepo) FindAll() ([]model.PendingProduct, error) {
	var pendings []model.PendingProduct
	err := r.db.Order("created_at DESC").Find(&pendings).Error
	return pendings, err
}

func (r *pendingProductRepo) FindByID(id uuid.UUID) (*model.PendingProduct, error) {
	var pending model.PendingProduct
	if err := r.db.First(&pending, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingProductRepo) Update(pending *model.PendingProduct) error {
	return r.db.Save(pending).Error
}
