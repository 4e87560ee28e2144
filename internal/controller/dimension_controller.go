package controller

import (
	"task_maturity_backend/internal/scoring"
	"task_maturity_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DimensionController struct{}

func NewDimensionController() *DimensionController {
	return &DimensionController{}
}

// List godoc
// @Summary 维度阈值表
// @Description 8 个维度的 Low / Average / High 分段，与具体分数无关
// @Tags 维度
// @Produce json
// @Success 200 {object} util.Response{data=[]scoring.Dimension}
// @Router /api/dimensions [get]
func (c *DimensionController) List(ctx *gin.Context) {
	util.Success(ctx, scoring.Dimensions())
}
