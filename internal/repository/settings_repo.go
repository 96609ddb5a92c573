package repository

import (
	"vendshop/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.Settings, error)
	Update(depositWorld string) (*model.Settings, error)
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

// Get returns the singleton settings row, creating it with defaults on first read
func (r *settingsRepo) Get() (*model.Settings, error) {
	var settings model.Settings
	err := r.db.Where(model.Settings{ID: model.SettingsID}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Update(depositWorld string) (*model.Settings, error) {
	settings, err := r.Get()
	if err != nil {
		return nil, err
	}
	settings.DepositWorld = depositWorld
	if err := r.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
