package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 설문 문항 목록
// @Tags 문항
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.Service.List(surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

type saveQuestionsRequest struct {
	Questions []service.QuestionInput `json:"questions" binding:"required"`
}

// @Summary 설문 문항 일괄 저장
// @Description 기존 문항을 모두 지우고 요청 본문의 문항으로 교체한다.
// @Tags 문항
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Param body body saveQuestionsRequest true "문항 목록"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/questions [put]
func (c *QuestionController) Save(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req saveQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.Save(surveyID, req.Questions)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary AI 문항 생성
// @Description 과정 메타데이터를 바탕으로 문항 초안을 생성한다. 저장은 별도로 한다.
// @Tags 문항
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Param body body service.GenerateRequest true "생성 옵션"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/questions/generate [post]
func (c *QuestionController) Generate(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// 본문 없이 호출하면 기본 옵션으로 생성한다
	var req service.GenerateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	questions, err := c.Service.Generate(surveyID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}
