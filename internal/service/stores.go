package service

import (
	"context"
	"time"

	"task_maturity_backend/internal/model"
)

// 以下接口由 internal/repository 中的 GORM / Redis 实现满足

type UserStore interface {
	// FindByID 未找到时返回 gorm.ErrRecordNotFound
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type ResponseStore interface {
	FindByUser(ctx context.Context, userID uint) ([]model.UserTestResponse, error)
}

type SessionStore interface {
	// FindLatestByUser 未完成过测试时返回 gorm.ErrRecordNotFound
	FindLatestByUser(ctx context.Context, userID uint) (*model.TestSession, error)
}

type QuestionCatalog interface {
	FindAllWithOptions(ctx context.Context) ([]model.TestQuestion, error)
}

// ResultCache 以用户为键缓存序列化后的分析结果
type ResultCache interface {
	Get(ctx context.Context, userID uint) ([]byte, bool, error)
	Set(ctx context.Context, userID uint, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, userID uint) error
}

type TestRecorder interface {
	SessionStore
	// CreateSessionWithResponses 在写入前原子地复核重测资格，不满足时返回 util.ErrTestAlreadySubmitted
	CreateSessionWithResponses(ctx context.Context, session *model.TestSession, responses []model.UserTestResponse) error
	ListSessionsByUser(ctx context.Context, userID uint) ([]model.TestSession, error)
	CountSessionsByUser(ctx context.Context, userID uint) (int64, error)
}

type UserDirectory interface {
	UserStore
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Count(ctx context.Context) (int64, error)
	SetCanRetake(ctx context.Context, id uint, allowed bool) error
}

type SessionStats interface {
	SummariesByUsers(ctx context.Context, userIDs []uint) (map[uint]model.SessionSummary, error)
	CountSessions(ctx context.Context) (int64, error)
	CountUsersWithSessions(ctx context.Context) (int64, error)
}

type UserAccounts interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id uint) error
}

type AdminAccounts interface {
	FindByLoginID(ctx context.Context, loginID string) (*model.Admin, error)
}
