package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"task_maturity_backend/internal/util"
	"task_maturity_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserWithStatus struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"createdAt"`
	CanRetake    bool       `json:"canRetake"`
	HasTakenTest bool       `json:"hasTakenTest"`
	TestCount    int64      `json:"testCount"`
	LastTestDate *time.Time `json:"lastTestDate"`
}

type Statistics struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalTests     int64 `json:"totalTests"`
	UsersWithTests int64 `json:"usersWithTests"`
	CompletionRate int   `json:"completionRate"`
}

type ReportFile struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
}

type ReportUploader interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type AdminService struct {
	Users    UserDirectory
	Stats    SessionStats
	Analysis *AnalysisService
	Storage  ReportUploader
}

func NewAdminService(users UserDirectory, stats SessionStats, analysis *AnalysisService, storage ReportUploader) *AdminService {
	return &AdminService{
		Users:    users,
		Stats:    stats,
		Analysis: analysis,
		Storage:  storage,
	}
}

// ListUsersWithStatus 用户列表附带测试完成情况
func (s *AdminService) ListUsersWithStatus(ctx context.Context, page, limit int) ([]UserWithStatus, int64, error) {
	users, total, err := s.Users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	summaries, err := s.Stats.SummariesByUsers(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	list := make([]UserWithStatus, 0, len(users))
	for _, u := range users {
		item := UserWithStatus{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			CanRetake: u.CanRetake,
		}
		if sum, ok := summaries[u.ID]; ok && sum.TestCount > 0 {
			last := sum.LastTestDate
			item.HasTakenTest = true
			item.TestCount = sum.TestCount
			item.LastTestDate = &last
		}
		list = append(list, item)
	}
	return list, total, nil
}

// GetUserTestResult 原始得分表，和维度分析使用同一个计分函数
func (s *AdminService) GetUserTestResult(ctx context.Context, userID uint) (*GridSnapshot, error) {
	return s.Analysis.BuildUserGrid(ctx, userID)
}

func (s *AdminService) GetUserAnalysis(ctx context.Context, userID uint) (*AnalysisResult, error) {
	return s.Analysis.AnalyzeTestResults(ctx, userID)
}

func (s *AdminService) GetStatistics(ctx context.Context) (*Statistics, error) {
	totalUsers, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTests, err := s.Stats.CountSessions(ctx)
	if err != nil {
		return nil, err
	}
	withTests, err := s.Stats.CountUsersWithSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalUsers:     totalUsers,
		TotalTests:     totalTests,
		UsersWithTests: withTests,
	}
	if totalUsers > 0 {
		stats.CompletionRate = int(withTests * 100 / totalUsers)
	}
	return stats, nil
}

// GrantRetest 允许用户再提交一次
func (s *AdminService) GrantRetest(ctx context.Context, userID uint) error {
	err := s.Users.SetCanRetake(ctx, userID, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	s.Analysis.InvalidateCache(ctx, userID)
	logger.Log.Info("Retest granted", zap.Uint("userID", userID))
	return nil
}

// ExportReport 生成 CSV 报告并上传到配置的存储
func (s *AdminService) ExportReport(ctx context.Context, userID uint) (*ReportFile, error) {
	result, err := s.Analysis.AnalyzeTestResults(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := RenderReportCSV(result)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("reports/%d/%s_%s.csv", userID, time.Now().Format("20060102"), uuid.New().String()[:8])
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	logger.Log.Info("Report exported", zap.Uint("userID", userID), zap.String("file", name))
	return &ReportFile{FileName: name, URL: url, Size: len(data)}, nil
}
