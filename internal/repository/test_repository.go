package repository

import (
	"context"
	"time"

	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TestRepository 负责测试会话与作答记录
type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) FindByUser(ctx context.Context, userID uint) ([]model.UserTestResponse, error) {
	var responses []model.UserTestResponse
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&responses).Error
	return responses, err
}

// FindLatestByUser 未完成过测试时返回 gorm.ErrRecordNotFound
func (r *TestRepository) FindLatestByUser(ctx context.Context, userID uint) (*model.TestSession, error) {
	var session model.TestSession
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC, created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TestRepository) ListSessionsByUser(ctx context.Context, userID uint) ([]model.TestSession, error) {
	var sessions []model.TestSession
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *TestRepository) CountSessionsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TestSession{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CreateSessionWithResponses 在同一事务中写入会话和作答，并清除重测标记。
// 用户行加写锁后再检查重测资格，已有会话且未获重测许可时返回 util.ErrTestAlreadySubmitted。
func (r *TestRepository) CreateSessionWithResponses(ctx context.Context, session *model.TestSession, responses []model.UserTestResponse) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "can_retake").
			First(&user, session.UserID).Error; err != nil {
			return err
		}

		var taken int64
		if err := tx.Model(&model.TestSession{}).
			Where("user_id = ?", session.UserID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 && !user.CanRetake {
			return util.ErrTestAlreadySubmitted
		}

		if err := tx.Create(session).Error; err != nil {
			return err
		}

		for i := range responses {
			responses[i].UserID = session.UserID
			responses[i].SessionID = session.ID
		}
		if len(responses) > 0 {
			if err := tx.CreateInBatches(responses, 100).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.User{}).
			Where("id = ?", session.UserID).
			Update("can_retake", false).Error
	})
}

// SummariesByUsers 批量统计用户的测试次数与最近完成时间
func (r *TestRepository) SummariesByUsers(ctx context.Context, userIDs []uint) (map[uint]model.SessionSummary, error) {
	summaries := make(map[uint]model.SessionSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	var rows []struct {
		UserID       uint
		TestCount    int64
		LastTestDate time.Time
	}
	err := r.DB.WithContext(ctx).Model(&model.TestSession{}).
		Select("user_id, COUNT(*) AS test_count, MAX(completed_at) AS last_test_date").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries[row.UserID] = model.SessionSummary{
			UserID:       row.UserID,
			TestCount:    row.TestCount,
			LastTestDate: row.LastTestDate,
		}
	}
	return summaries, nil
}

func (r *TestRepository) CountSessions(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TestSession{}).Count(&count).Error
	return count, err
}

func (r *TestRepository) CountUsersWithSessions(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TestSession{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
