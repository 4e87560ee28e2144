package controller

import (
	"errors"
	"net/http"

	"task_maturity_backend/internal/util"
	"task_maturity_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError 把服务层错误映射为 HTTP 响应。
// "尚未完成测试" 和 "测试数据异常" 必须返回不同的状态码和文案。
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFoundWithMessage(ctx, util.MsgUserNotFound)
	case util.IsNotFound(err):
		util.NotFoundWithMessage(ctx, util.MsgTestNotCompleted)
	case util.IsDataProblem(err):
		logger.Log.Error("Test data problem", zap.String("path", ctx.FullPath()), zap.Error(err))
		util.Error(ctx, http.StatusInternalServerError, util.MsgTestDataProblem)
	case errors.Is(err, util.ErrInvalidSubmission):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrTestAlreadySubmitted):
		util.Error(ctx, http.StatusForbidden, "Test already submitted")
	case errors.Is(err, util.ErrFetchFailed):
		logger.Log.Error("Test data fetch failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		util.Error(ctx, http.StatusBadGateway, util.MsgFetchFailed)
	default:
		util.LogInternalError(ctx, err)
	}
}

// currentUserID 取当前登录用户 ID，未登录时已写入 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

// pathUserID 解析 :id 路径参数，非法时已写入 400
func pathUserID(ctx *gin.Context) (uint, bool) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid user id")
		return 0, false
	}
	return id, true
}
