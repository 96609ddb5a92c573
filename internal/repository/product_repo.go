package repository

import (
	"vendshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	SwapStock(tx *gorm.DB, id uuid.UUID, newStock []string, version int64) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// SwapStock replaces the unit list only if the row version is unchanged since
// the caller read it. Returns false on a version conflict so the caller can
// retry or abort. Accepts the tx handle so it can join a wider transaction.
func (r *productRepo) SwapStock(tx *gorm.DB, id uuid.UUID, newStock []string, version int64) (bool, error) {
	if newStock == nil {
		newStock = []string{}
	}
	res := tx.Model(&model.Product{}).
		Where("id = ? AND version = ?", id, version).
		Select("StockData", "Version").
		Updates(model.Product{StockData: newStock, Version: version + 1})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
