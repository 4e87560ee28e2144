package service

import (
	"context"
	"errors"
	"time"

	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/util"
	"task_maturity_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users  UserAccounts
	Admins AdminAccounts
	Cfg    *config.JWTConfig
}

func NewAuthService(users UserAccounts, admins AdminAccounts, cfg *config.JWTConfig) *AuthService {
	return &AuthService{
		Users:  users,
		Admins: admins,
		Cfg:    cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户登录，返回令牌和用户信息
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.ID, model.RoleUser, s.Cfg.Secret, s.expiration())
	if err != nil {
		return "", nil, err
	}

	if err := s.Users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Log.Warn("Failed to update last login", zap.Uint("userID", user.ID), zap.Error(err))
	}
	return token, user, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, loginID, password string) (string, *model.Admin, error) {
	admin, err := s.Admins.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(admin.ID, model.RoleAdmin, s.Cfg.Secret, s.expiration())
	if err != nil {
		return "", nil, err
	}

	logger.Log.Info("Admin logged in", zap.String("loginID", loginID))
	return token, admin, nil
}

func (s *AuthService) expiration() time.Duration {
	if s.Cfg.ExpireTime <= 0 {
		return 24 * time.Hour
	}
	return s.Cfg.ExpireTime
}
