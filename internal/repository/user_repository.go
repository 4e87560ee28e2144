package repository

import (
	"context"
	"time"

	"task_maturity_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	if user.LastLogin.IsZero() {
		user.LastLogin = now
	}
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// SetCanRetake 返回 gorm.ErrRecordNotFound 表示用户不存在
func (r *UserRepository) SetCanRetake(ctx context.Context, id uint, allowed bool) error {
	result := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("can_retake", allowed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 值未变化时 MySQL 也返回 0，需要再确认用户是否存在
		var count int64
		if err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// List 按注册时间倒序分页
func (r *UserRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var (
		users []model.User
		total int64
	)

	db := r.DB.WithContext(ctx).Model(&model.User{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}
