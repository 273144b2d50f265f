package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *service.DashboardService
}

func NewDashboardController(dashboard *service.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

// @Summary 대시보드 요약
// @Description 과정 수, 상태별 설문 수, 최근 응답을 한 번에 돌려준다.
// @Tags 대시보드
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.Dashboard.Summary()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
