package repository

import (
	"context"

	"task_maturity_backend/internal/model"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) FindByLoginID(ctx context.Context, loginID string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.WithContext(ctx).Where("login_id = ?", loginID).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
