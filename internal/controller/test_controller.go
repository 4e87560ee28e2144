package controller

import (
	"context"

	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/service"
	"task_maturity_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type testTaker interface {
	GetTestQuestions(ctx context.Context) ([]model.TestQuestion, error)
	SubmitTestResponses(ctx context.Context, userID uint, inputs []service.ResponseInput) (*model.TestSession, error)
	GetStatus(ctx context.Context, userID uint) (*service.TestStatus, error)
	GetTestHistory(ctx context.Context, userID uint) ([]model.TestSession, error)
}

type TestController struct {
	TestService testTaker
}

func NewTestController(testService testTaker) *TestController {
	return &TestController{TestService: testService}
}

// swagger:model SubmitTestRequest
type SubmitTestRequest struct {
	Responses []service.ResponseInput `json:"responses" binding:"required,min=1,dive"`
}

// GetQuestions godoc
// @Summary 获取测试题目
// @Description 7 道题，每题 8 个选项，按自然顺序
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TestQuestion}
// @Router /api/test/questions [get]
func (c *TestController) GetQuestions(ctx *gin.Context) {
	questions, err := c.TestService.GetTestQuestions(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Submit godoc
// @Summary 提交测试
// @Description 每题 8 个选项的分数之和必须为 10
// @Tags 测试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitTestRequest true "作答"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "作答不合法"
// @Failure 403 {object} util.Response "已提交过测试"
// @Router /api/test/submit [post]
func (c *TestController) Submit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.TestService.SubmitTestResponses(ctx.Request.Context(), userID, req.Responses)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"sessionId":   session.ID,
		"completedAt": session.CompletedAt,
		"totalScore":  session.TotalScore,
	})
}

// GetStatus godoc
// @Summary 测试完成状态
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TestStatus}
// @Router /api/test/status [get]
func (c *TestController) GetStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	status, err := c.TestService.GetStatus(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// GetHistory godoc
// @Summary 测试历史
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TestSession}
// @Router /api/test/history [get]
func (c *TestController) GetHistory(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	history, err := c.TestService.GetTestHistory(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, history)
}
