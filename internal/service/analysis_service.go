package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/scoring"
	"task_maturity_backend/internal/util"
	"task_maturity_backend/pkg/logger"
	"task_maturity_backend/pkg/monitoring"
	"task_maturity_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AnalysisResult 一次完整的维度分析结果，只在内存中派生，不落库
type AnalysisResult struct {
	UserID                    uint                      `json:"userId"`
	User                      *model.User               `json:"user"`
	Session                   *model.TestSession        `json:"session"`
	Grid                      *scoring.Grid             `json:"grid"`
	DimensionResults          []scoring.DimensionResult `json:"dimensionResults"`
	TotalScore                int                       `json:"totalScore"`
	MaxPossibleScore          int                       `json:"maxPossibleScore"`
	QuestionsAnswered         int                       `json:"questionsAnswered"`
	CompletionRate            int                       `json:"completionRate"`
	HighPerformanceDimensions int                       `json:"highPerformanceDimensions"`
	WarningCount              int                       `json:"warningCount"`
	Warnings                  []scoring.Warning         `json:"warnings"`
	AnalyzedAt                time.Time                 `json:"analyzedAt"`
}

// GridSnapshot 管理端原始得分表，与维度分析共用同一个 Grid
type GridSnapshot struct {
	User              *model.User        `json:"user"`
	Session           *model.TestSession `json:"session"`
	Grid              *scoring.Grid      `json:"grid"`
	QuestionsAnswered int                `json:"questionsAnswered"`
}

type analysisInput struct {
	user      *model.User
	session   *model.TestSession
	responses []model.UserTestResponse
	catalog   []model.TestQuestion
}

type AnalysisService struct {
	Users     UserStore
	Responses ResponseStore
	Sessions  SessionStore
	Catalog   QuestionCatalog
	Cache     ResultCache

	mu       sync.RWMutex
	timeout  time.Duration
	cacheTTL time.Duration
	now      func() time.Time
}

func NewAnalysisService(
	users UserStore,
	responses ResponseStore,
	sessions SessionStore,
	catalog QuestionCatalog,
	cache ResultCache,
	cfg config.AnalysisConfig,
) *AnalysisService {
	return &AnalysisService{
		Users:     users,
		Responses: responses,
		Sessions:  sessions,
		Catalog:   catalog,
		Cache:     cache,
		timeout:   cfg.Timeout(),
		cacheTTL:  cfg.CacheTTL(),
		now:       time.Now,
	}
}

// ApplyConfig 配置热更新回调
func (s *AnalysisService) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = cfg.Analysis.Timeout()
	s.cacheTTL = cfg.Analysis.CacheTTL()
	logger.Log.Info("Analysis settings updated",
		zap.Duration("timeout", s.timeout),
		zap.Duration("cacheTTL", s.cacheTTL))
}

func (s *AnalysisService) settings() (time.Duration, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeout, s.cacheTTL
}

// AnalyzeTestResults 读取用户最近一次测试的作答，计算 8 个维度的得分与分段
func (s *AnalysisService) AnalyzeTestResults(ctx context.Context, userID uint) (*AnalysisResult, error) {
	start := time.Now()
	timeout, cacheTTL := s.settings()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "AnalysisService.AnalyzeTestResults",
		attribute.Int64("user.id", int64(userID)))
	defer span.End()

	if cached := s.loadCached(ctx, userID); cached != nil {
		monitoring.AnalysisTotal.WithLabelValues("cached").Inc()
		return cached, nil
	}

	result, err := s.analyze(ctx, userID)
	monitoring.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.AnalysisTotal.WithLabelValues(outcomeOf(err)).Inc()
		tracing.RecordError(span, err)
		if !util.IsNotFound(err) {
			logger.Log.Error("Analysis failed", zap.Uint("userID", userID), zap.Error(err))
		}
		return nil, err
	}

	monitoring.AnalysisTotal.WithLabelValues("ok").Inc()
	for _, d := range result.DimensionResults {
		monitoring.DimensionRangeTotal.WithLabelValues(d.DimensionName, string(d.Range)).Inc()
	}
	span.SetAttributes(
		attribute.Int("analysis.total_score", result.TotalScore),
		attribute.Int("analysis.warnings", result.WarningCount),
	)

	if cacheTTL > 0 {
		s.storeCached(ctx, userID, result, cacheTTL)
	}
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, userID uint) (*AnalysisResult, error) {
	in, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	grid, err := s.buildGrid(userID, in)
	if err != nil {
		return nil, err
	}

	dimensions := scoring.ScoreDimensions(grid.ColumnTotals)
	answered := grid.QuestionsAnswered()

	return &AnalysisResult{
		UserID:                    userID,
		User:                      in.user,
		Session:                   in.session,
		Grid:                      grid,
		DimensionResults:          dimensions,
		TotalScore:                grid.Total,
		MaxPossibleScore:          scoring.MaxTotalScore,
		QuestionsAnswered:         answered,
		CompletionRate:            answered * 100 / scoring.QuestionCount,
		HighPerformanceDimensions: scoring.CountRange(dimensions, scoring.RangeHigh),
		WarningCount:              len(grid.Warnings),
		Warnings:                  grid.Warnings,
		AnalyzedAt:                s.now(),
	}, nil
}

// BuildUserGrid 管理端原始得分表
func (s *AnalysisService) BuildUserGrid(ctx context.Context, userID uint) (*GridSnapshot, error) {
	timeout, _ := s.settings()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "AnalysisService.BuildUserGrid",
		attribute.Int64("user.id", int64(userID)))
	defer span.End()

	in, err := s.fetch(ctx, userID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	grid, err := s.buildGrid(userID, in)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	return &GridSnapshot{
		User:              in.user,
		Session:           in.session,
		Grid:              grid,
		QuestionsAnswered: grid.QuestionsAnswered(),
	}, nil
}

// InvalidateCache 新提交或放开重测后调用
func (s *AnalysisService) InvalidateCache(ctx context.Context, userID uint) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, userID); err != nil {
		logger.Log.Warn("Failed to invalidate analysis cache", zap.Uint("userID", userID), zap.Error(err))
	}
}

// fetch 四个读取互不依赖，并发执行，全部完成后才开始计分
func (s *AnalysisService) fetch(ctx context.Context, userID uint) (*analysisInput, error) {
	in := &analysisInput{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.Users.FindByID(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", util.ErrUserNotFound, userID)
		}
		if err != nil {
			return fmt.Errorf("%w: user: %v", util.ErrFetchFailed, err)
		}
		in.user = user
		return nil
	})

	g.Go(func() error {
		session, err := s.Sessions.FindLatestByUser(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: session: %v", util.ErrFetchFailed, err)
		}
		in.session = session
		return nil
	})

	g.Go(func() error {
		responses, err := s.Responses.FindByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("%w: responses: %v", util.ErrFetchFailed, err)
		}
		in.responses = responses
		return nil
	})

	g.Go(func() error {
		catalog, err := s.Catalog.FindAllWithOptions(gctx)
		if err != nil {
			return fmt.Errorf("%w: catalog: %v", util.ErrFetchFailed, err)
		}
		in.catalog = catalog
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(in.responses) == 0 {
		return nil, fmt.Errorf("%w: user %d", util.ErrNoResults, userID)
	}
	if in.session == nil {
		return nil, fmt.Errorf("%w: user %d", util.ErrSessionNotFound, userID)
	}

	in.responses = responsesForSession(in.responses, in.session.ID)
	if len(in.responses) == 0 {
		return nil, fmt.Errorf("%w: session %s has no responses", util.ErrNoResults, in.session.ID)
	}
	return in, nil
}

func (s *AnalysisService) buildGrid(userID uint, in *analysisInput) (*scoring.Grid, error) {
	grid, err := scoring.BuildGrid(toScoringCatalog(in.catalog), toScoringResponses(in.responses))
	if err != nil {
		return nil, classifyScoringError(err)
	}

	for _, w := range grid.Warnings {
		monitoring.IntegrityWarnings.WithLabelValues(string(w.Kind)).Inc()
	}
	if len(grid.Warnings) > 0 {
		logger.Log.Warn("Response data integrity warnings",
			zap.Uint("userID", userID),
			zap.Int("count", len(grid.Warnings)),
			zap.Any("warnings", grid.Warnings))
	}
	return grid, nil
}

// classifyScoringError 题库数量不对归为数据不完整，其余量表配置问题归为配置错误
func classifyScoringError(err error) error {
	if errors.Is(err, scoring.ErrIncompleteCatalog) {
		return fmt.Errorf("%w: %v", util.ErrIncompleteData, err)
	}
	var mal *scoring.MalformedQuestionError
	if errors.As(err, &mal) && mal.OptionCount != scoring.ColumnCount {
		return fmt.Errorf("%w: %v", util.ErrIncompleteData, err)
	}
	return fmt.Errorf("%w: %v", util.ErrInstrumentMisconfigured, err)
}

func outcomeOf(err error) string {
	switch {
	case util.IsNotFound(err):
		return "not_found"
	case util.IsDataProblem(err):
		return "data_problem"
	default:
		return "error"
	}
}

func (s *AnalysisService) loadCached(ctx context.Context, userID uint) *AnalysisResult {
	if s.Cache == nil {
		return nil
	}
	data, ok, err := s.Cache.Get(ctx, userID)
	if err != nil {
		monitoring.CacheLookups.WithLabelValues("error").Inc()
		logger.Log.Warn("Analysis cache read failed", zap.Uint("userID", userID), zap.Error(err))
		return nil
	}
	if !ok {
		monitoring.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}

	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		monitoring.CacheLookups.WithLabelValues("error").Inc()
		return nil
	}
	monitoring.CacheLookups.WithLabelValues("hit").Inc()
	return &result
}

func (s *AnalysisService) storeCached(ctx context.Context, userID uint, result *AnalysisResult, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, userID, data, ttl); err != nil {
		logger.Log.Warn("Analysis cache write failed", zap.Uint("userID", userID), zap.Error(err))
	}
}
