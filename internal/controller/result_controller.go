package controller

import (
	"context"

	"task_maturity_backend/internal/service"
	"task_maturity_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type resultAnalyzer interface {
	AnalyzeTestResults(ctx context.Context, userID uint) (*service.AnalysisResult, error)
}

type ResultController struct {
	AnalysisService resultAnalyzer
}

func NewResultController(analysisService resultAnalyzer) *ResultController {
	return &ResultController{AnalysisService: analysisService}
}

// GetMyResult godoc
// @Summary 我的测试结果
// @Description 最近一次测试的 8 个维度得分与分段
// @Tags 测试结果
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AnalysisResult}
// @Failure 404 {object} util.Response "尚未完成测试"
// @Failure 500 {object} util.Response "测试数据异常"
// @Router /api/results [get]
func (c *ResultController) GetMyResult(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.AnalysisService.AnalyzeTestResults(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
