package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats    *service.StatsService
	Analysis *service.AnalysisService
}

func NewStatsController(stats *service.StatsService, analysis *service.AnalysisService) *StatsController {
	return &StatsController{Stats: stats, Analysis: analysis}
}

// @Summary 설문 통계 조회
// @Description 문항별/카테고리별/전체 기술통계를 계산한다.
// @Tags 통계
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/stats [get]
func (c *StatsController) GetSurveyStats(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.Stats.Aggregate(ctx.Request.Context(), surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 설문 AI 분석 실행
// @Description 집계 결과를 AI에 보내 정성 분석을 받고 설문 레코드에 저장한다.
// @Tags 통계
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/analysis [post]
func (c *StatsController) AnalyzeSurvey(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	analysis, err := c.Analysis.AnalyzeSurvey(ctx.Request.Context(), surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, analysis)
}

// @Summary 과정 AI 분석 실행
// @Description 과정에 속한 설문들의 집계를 모아 강점/약점까지 분석한다.
// @Tags 통계
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "과정 ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/analysis [post]
func (c *StatsController) AnalyzeCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	analysis, err := c.Analysis.AnalyzeCourse(ctx.Request.Context(), courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, analysis)
}
