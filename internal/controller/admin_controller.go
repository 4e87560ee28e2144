package controller

import (
	"context"

	"task_maturity_backend/internal/service"
	"task_maturity_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type adminOperations interface {
	ListUsersWithStatus(ctx context.Context, page, limit int) ([]service.UserWithStatus, int64, error)
	GetUserTestResult(ctx context.Context, userID uint) (*service.GridSnapshot, error)
	GetUserAnalysis(ctx context.Context, userID uint) (*service.AnalysisResult, error)
	GetStatistics(ctx context.Context) (*service.Statistics, error)
	GrantRetest(ctx context.Context, userID uint) error
	ExportReport(ctx context.Context, userID uint) (*service.ReportFile, error)
}

type AdminController struct {
	AdminService adminOperations
}

func NewAdminController(adminService adminOperations) *AdminController {
	return &AdminController{AdminService: adminService}
}

// ListUsers godoc
// @Summary 用户列表及测试状态
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]service.UserWithStatus}}
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	list, total, err := c.AdminService.ListUsersWithStatus(ctx.Request.Context(), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Paged(ctx, list, total, page, limit)
}

// GetUserResult godoc
// @Summary 用户原始得分表
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=service.GridSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id}/results [get]
func (c *AdminController) GetUserResult(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	snapshot, err := c.AdminService.GetUserTestResult(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// GetUserAnalysis godoc
// @Summary 用户维度分析
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=service.AnalysisResult}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id}/analysis [get]
func (c *AdminController) GetUserAnalysis(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	result, err := c.AdminService.GetUserAnalysis(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GrantRetest godoc
// @Summary 允许用户重新测试
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/retest [post]
func (c *AdminController) GrantRetest(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	if err := c.AdminService.GrantRetest(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"userId": userID, "canRetake": true})
}

// ExportReport godoc
// @Summary 导出用户 CSV 报告
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 201 {object} util.Response{data=service.ReportFile}
// @Router /api/admin/users/{id}/report [post]
func (c *AdminController) ExportReport(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	report, err := c.AdminService.ExportReport(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// GetStatistics godoc
// @Summary 测试统计
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Statistics}
// @Router /api/admin/statistics [get]
func (c *AdminController) GetStatistics(ctx *gin.Context) {
	stats, err := c.AdminService.GetStatistics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
