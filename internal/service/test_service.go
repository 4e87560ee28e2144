package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/scoring"
	"task_maturity_backend/internal/util"
	"task_maturity_backend/pkg/logger"
	"task_maturity_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResponseInput struct {
	QuestionID uint `json:"questionId" binding:"required"`
	OptionID   uint `json:"optionId" binding:"required"`
	Points     int  `json:"points"`
}

type TestStatus struct {
	HasTakenTest bool               `json:"hasTakenTest"`
	CanRetake    bool               `json:"canRetake"`
	TestCount    int64              `json:"testCount"`
	LastSession  *model.TestSession `json:"lastSession,omitempty"`
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context, userID uint)
}

type TestService struct {
	Catalog QuestionCatalog
	Tests   TestRecorder
	Users   UserStore
	Results cacheInvalidator

	now func() time.Time
}

func NewTestService(catalog QuestionCatalog, tests TestRecorder, users UserStore, results cacheInvalidator) *TestService {
	return &TestService{
		Catalog: catalog,
		Tests:   tests,
		Users:   users,
		Results: results,
		now:     time.Now,
	}
}

// GetTestQuestions 按自然顺序返回题目和选项，不暴露置换信息
func (s *TestService) GetTestQuestions(ctx context.Context) ([]model.TestQuestion, error) {
	questions, err := s.Catalog.FindAllWithOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %v", util.ErrFetchFailed, err)
	}
	return questions, nil
}

// SubmitTestResponses 校验并保存一次完整作答，每题 8 个选项合计必须为 10 分
func (s *TestService) SubmitTestResponses(ctx context.Context, userID uint, inputs []ResponseInput) (*model.TestSession, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	taken, err := s.Tests.CountSessionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if taken > 0 && !user.CanRetake {
		monitoring.SubmissionTotal.WithLabelValues("already_submitted").Inc()
		return nil, util.ErrTestAlreadySubmitted
	}

	questions, err := s.Catalog.FindAllWithOptions(ctx)
	if err != nil {
		return nil, err
	}

	rows, total, err := validateSubmission(questions, inputs)
	if err != nil {
		monitoring.SubmissionTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	session := &model.TestSession{
		UserID:      userID,
		CompletedAt: s.now(),
		TotalScore:  total,
	}
	if err := s.Tests.CreateSessionWithResponses(ctx, session, rows); err != nil {
		if errors.Is(err, util.ErrTestAlreadySubmitted) {
			monitoring.SubmissionTotal.WithLabelValues("already_submitted").Inc()
			return nil, err
		}
		monitoring.SubmissionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if s.Results != nil {
		s.Results.InvalidateCache(ctx, userID)
	}

	monitoring.SubmissionTotal.WithLabelValues("ok").Inc()
	logger.Log.Info("Test submitted",
		zap.Uint("userID", userID),
		zap.String("sessionID", session.ID),
		zap.Int("responses", len(rows)))
	return session, nil
}

func validateSubmission(questions []model.TestQuestion, inputs []ResponseInput) ([]model.UserTestResponse, int, error) {
	if len(questions) != scoring.QuestionCount {
		return nil, 0, fmt.Errorf("%w: catalog has %d questions", util.ErrIncompleteData, len(questions))
	}

	owner := make(map[uint]uint, len(questions)*scoring.ColumnCount)
	subtotals := make(map[uint]int, len(questions))
	for _, q := range questions {
		subtotals[q.ID] = 0
		for _, o := range q.Options {
			owner[o.ID] = q.ID
		}
	}

	seen := make(map[uint]bool, len(inputs))
	rows := make([]model.UserTestResponse, 0, len(inputs))
	total := 0
	for _, in := range inputs {
		if in.Points < 0 || in.Points > scoring.PointsPerQuestion {
			return nil, 0, fmt.Errorf("%w: option %d has %d points", util.ErrInvalidSubmission, in.OptionID, in.Points)
		}
		q, ok := owner[in.OptionID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown option %d", util.ErrInvalidSubmission, in.OptionID)
		}
		if q != in.QuestionID {
			return nil, 0, fmt.Errorf("%w: option %d does not belong to question %d", util.ErrInvalidSubmission, in.OptionID, in.QuestionID)
		}
		if seen[in.OptionID] {
			return nil, 0, fmt.Errorf("%w: option %d submitted twice", util.ErrInvalidSubmission, in.OptionID)
		}
		seen[in.OptionID] = true

		subtotals[q] += in.Points
		total += in.Points
		rows = append(rows, model.UserTestResponse{
			QuestionID: in.QuestionID,
			OptionID:   in.OptionID,
			Points:     in.Points,
		})
	}

	for i, q := range questions {
		if subtotals[q.ID] != scoring.PointsPerQuestion {
			return nil, 0, fmt.Errorf("%w: question %s has %d points, want %d",
				util.ErrInvalidSubmission, scoring.QuestionLabel(i), subtotals[q.ID], scoring.PointsPerQuestion)
		}
	}
	return rows, total, nil
}

func (s *TestService) GetTestHistory(ctx context.Context, userID uint) ([]model.TestSession, error) {
	return s.Tests.ListSessionsByUser(ctx, userID)
}

func (s *TestService) HasTakenTest(ctx context.Context, userID uint) (bool, error) {
	count, err := s.Tests.CountSessionsByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *TestService) GetStatus(ctx context.Context, userID uint) (*TestStatus, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	count, err := s.Tests.CountSessionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &TestStatus{
		HasTakenTest: count > 0,
		CanRetake:    user.CanRetake,
		TestCount:    count,
	}
	if count > 0 {
		latest, err := s.Tests.FindLatestByUser(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		status.LastSession = latest
	}
	return status, nil
}
