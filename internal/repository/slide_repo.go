package repository

import (
	"vendshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlideRepository interface {
	Create(slide *model.Slide) error
	FindAll(activeOnly bool) ([]model.Slide, error)
	FindByID(id uuid.UUID) (*model.Slide, error)
	Update(slide *model.Slide) error
	Delete(id uuid.UUID) (bool, error)
}

type slideRepo struct {
	db *gorm.DB
}

func NewSlideRepo(db *gorm.DB) SlideRepository {
	return &slideRepo{db}
}

func (r *slideRepo) Create(slide *model.Slide) error {
	return r.db.Create(slide).Error
}

func (r *slideRepo) FindAll(activeOnly bool) ([]model.Slide, error) {
	var slides []model.Slide
	q := r.db.Order("sort_order ASC, created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&slides).Error
	return slides, err
}

func (r *slideRepo) FindByID(id uuid.UUID) (*model.Slide, error) {
	var slide model.Slide
	if err := r.db.First(&slide, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *slideRepo) Update(slide *model.Slide) error {
	return r.db.Save(slide).Error
}

func (r *slideRepo) Delete(id uuid.UUID) (bool, error) {
	res := r.db.Delete(&model.Slide{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
